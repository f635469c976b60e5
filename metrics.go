package probedmap

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeFound     = "Found"
	outcomeNotFound  = "NotFound"
	outcomeInserted  = "Inserted"
	outcomeUpdated   = "Updated"
	outcomeTableFull = "TableFull"
)

func newFindVisited() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "probedmap",
			Name:      "find_slots_visited",
			Help:      "Number of slots visited by Get, Contains and Delete.",
			Buckets:   prometheus.ExponentialBuckets(1.0, 2.0, 8),
		},
		[]string{"name", "outcome"},
	)
}

func newFindFullScans() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probedmap",
			Name:      "find_full_scans_total",
			Help:      "Number of lookups that visited every slot without reaching an empty one, which may indicate the table is too small.",
		},
		[]string{"name"},
	)
}

func newPutVisited() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "probedmap",
			Name:      "put_slots_visited",
			Help:      "Number of slots visited by Put.",
			Buckets:   prometheus.ExponentialBuckets(1.0, 2.0, 8),
		},
		[]string{"name", "outcome"},
	)
}

func newPutTableFull() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probedmap",
			Name:      "put_table_full_total",
			Help:      "Number of times Put was rejected because the table is full.",
		},
		[]string{"name"},
	)
}

// register adds c to reg, or returns the collector already registered under
// the same descriptor so that maps sharing a registry share their metrics.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// mapMetrics holds the observers of a single named map. A nil *mapMetrics
// records nothing.
type mapMetrics struct {
	findFound     prometheus.Observer
	findNotFound  prometheus.Observer
	findFullScans prometheus.Counter

	putInserted  prometheus.Observer
	putUpdated   prometheus.Observer
	putTableFull prometheus.Observer
	putRejected  prometheus.Counter
}

func newMapMetrics(reg prometheus.Registerer, name string) (*mapMetrics, error) {
	findVisited, err := register(reg, newFindVisited())
	if err != nil {
		return nil, err
	}
	findFullScans, err := register(reg, newFindFullScans())
	if err != nil {
		return nil, err
	}
	putVisited, err := register(reg, newPutVisited())
	if err != nil {
		return nil, err
	}
	putTableFull, err := register(reg, newPutTableFull())
	if err != nil {
		return nil, err
	}

	return &mapMetrics{
		findFound:     findVisited.WithLabelValues(name, outcomeFound),
		findNotFound:  findVisited.WithLabelValues(name, outcomeNotFound),
		findFullScans: findFullScans.WithLabelValues(name),

		putInserted:  putVisited.WithLabelValues(name, outcomeInserted),
		putUpdated:   putVisited.WithLabelValues(name, outcomeUpdated),
		putTableFull: putVisited.WithLabelValues(name, outcomeTableFull),
		putRejected:  putTableFull.WithLabelValues(name),
	}, nil
}

func (mm *mapMetrics) observeFind(visited int, found, fullScan bool) {
	if mm == nil {
		return
	}
	if found {
		mm.findFound.Observe(float64(visited))
		return
	}
	mm.findNotFound.Observe(float64(visited))
	if fullScan {
		mm.findFullScans.Inc()
	}
}

func (mm *mapMetrics) observePut(visited int, outcome string) {
	if mm == nil {
		return
	}
	switch outcome {
	case outcomeInserted:
		mm.putInserted.Observe(float64(visited))
	case outcomeUpdated:
		mm.putUpdated.Observe(float64(visited))
	case outcomeTableFull:
		mm.putTableFull.Observe(float64(visited))
		mm.putRejected.Inc()
	}
}
