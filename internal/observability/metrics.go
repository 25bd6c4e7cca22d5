package observability

// Metrics is what the loops and the web server report to.
type Metrics interface {
	ObserveCycle(loop string, ok bool, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	AddFetched(n int)
	IncMatched()
	AddStored(n int)
	IncDelivered()
	IncDeliveryFailure()
	IncSkippedPhone()
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveCycle(string, bool, float64)       {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) AddFetched(int)                           {}
func (Noop) IncMatched()                              {}
func (Noop) AddStored(int)                            {}
func (Noop) IncDelivered()                            {}
func (Noop) IncDeliveryFailure()                      {}
func (Noop) IncSkippedPhone()                         {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
