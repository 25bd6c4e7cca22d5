package observability

import "sync"

type observe struct {
	Kind   string
	Name   string
	OK     bool
	Status int
	Dur    float64
}

// Totals is a snapshot of the in-memory counters.
type Totals struct {
	Fetched, Matched, Stored             int
	Delivered, DeliveryFailures, Skipped int
	CacheHits, CacheMiss                 int
}

// Inmem keeps the last max observations plus running totals. Used by tests
// and by the loops when no metrics endpoint is configured.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals Totals
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		return
	}
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) add(f func(t *Totals)) {
	m.mu.Lock()
	f(&m.totals)
	m.mu.Unlock()
}

func (m *Inmem) ObserveCycle(loop string, ok bool, durMs float64) {
	m.push(&observe{Kind: "cycle", Name: loop, OK: ok, Dur: durMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Name: method + " " + route, Status: status, Dur: durMs})
}

func (m *Inmem) AddFetched(n int)    { m.add(func(t *Totals) { t.Fetched += n }) }
func (m *Inmem) IncMatched()         { m.add(func(t *Totals) { t.Matched++ }) }
func (m *Inmem) AddStored(n int)     { m.add(func(t *Totals) { t.Stored += n }) }
func (m *Inmem) IncDelivered()       { m.add(func(t *Totals) { t.Delivered++ }) }
func (m *Inmem) IncDeliveryFailure() { m.add(func(t *Totals) { t.DeliveryFailures++ }) }
func (m *Inmem) IncSkippedPhone()    { m.add(func(t *Totals) { t.Skipped++ }) }
func (m *Inmem) IncCacheHit()        { m.add(func(t *Totals) { t.CacheHits++ }) }
func (m *Inmem) IncCacheMiss()       { m.add(func(t *Totals) { t.CacheMiss++ }) }

func (m *Inmem) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}
