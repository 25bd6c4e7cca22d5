package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "kaspi_feedback"

// Prometheus is a prometheus.Collector implementing Metrics.
type Prometheus struct {
	cycles        *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	httpRequests  *prometheus.HistogramVec
	orders        *prometheus.CounterVec
	cache         *prometheus.CounterVec
}

func NewPrometheus() *Prometheus {
	return &Prometheus{
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cycles_total",
				Help:      "Supervised loop cycles by loop and outcome.",
			}, []string{"loop", "outcome"},
		),
		cycleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "cycle_duration_seconds",
				Help:      "Duration of one supervised loop cycle.",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
			}, []string{"loop"},
		),
		httpRequests: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Presentation server request duration.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "route", "status"},
		),
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "orders_total",
				Help:      "Orders seen per pipeline stage.",
			}, []string{"stage"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "product_cache_total",
				Help:      "Product resolution cache lookups.",
			}, []string{"result"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (p *Prometheus) Describe(ch chan<- *prometheus.Desc) {
	p.cycles.Describe(ch)
	p.cycleDuration.Describe(ch)
	p.httpRequests.Describe(ch)
	p.orders.Describe(ch)
	p.cache.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (p *Prometheus) Collect(ch chan<- prometheus.Metric) {
	p.cycles.Collect(ch)
	p.cycleDuration.Collect(ch)
	p.httpRequests.Collect(ch)
	p.orders.Collect(ch)
	p.cache.Collect(ch)
}

func (p *Prometheus) ObserveCycle(loop string, ok bool, durMs float64) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	p.cycles.WithLabelValues(loop, outcome).Inc()
	p.cycleDuration.WithLabelValues(loop).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(durMs / 1000)
}

func (p *Prometheus) AddFetched(n int)    { p.orders.WithLabelValues("fetched").Add(float64(n)) }
func (p *Prometheus) IncMatched()         { p.orders.WithLabelValues("matched").Inc() }
func (p *Prometheus) AddStored(n int)     { p.orders.WithLabelValues("stored").Add(float64(n)) }
func (p *Prometheus) IncDelivered()       { p.orders.WithLabelValues("delivered").Inc() }
func (p *Prometheus) IncDeliveryFailure() { p.orders.WithLabelValues("delivery_failed").Inc() }
func (p *Prometheus) IncSkippedPhone()    { p.orders.WithLabelValues("skipped_phone").Inc() }
func (p *Prometheus) IncCacheHit()        { p.cache.WithLabelValues("hit").Inc() }
func (p *Prometheus) IncCacheMiss()       { p.cache.WithLabelValues("miss").Inc() }
