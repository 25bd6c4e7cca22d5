package observability

import (
	"fmt"
	"net/http"
	"time"
)

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// AppendServerTiming adds one Server-Timing metric. Zero durations and empty
// descriptions are left out; if both are empty nothing is written.
func AppendServerTiming(w http.ResponseWriter, name string, d time.Duration, desc string) {
	switch {
	case d > 0 && desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f;desc=%q", name, ms(d), desc))
	case d > 0:
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f", name, ms(d)))
	case desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;desc=%q", name, desc))
	}
}

// SetCount writes an integer header such as X-Total-Count.
func SetCount(w http.ResponseWriter, key string, n int) {
	w.Header().Set(key, fmt.Sprintf("%d", n))
}
