package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
)

// Metrics is a decorator that counts processed transactions and measures
// their duration. Every measurement is labeled with the call (check or
// deliver), the message path and the ABCI result code.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ledger.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator. All collectors are registered
// with given registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "tx",
			Name:      "total",
			Help:      "Number of processed transactions.",
		}, []string{"call", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"call", "path"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrapf(errors.ErrHuman, "register collector: %s", err)
		}
	}
	return m, nil
}

// Check measures the check call.
func (m Metrics) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", ledger.GetPath(tx), start, err)
	return res, err
}

// Deliver measures the deliver call.
func (m Metrics) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", ledger.GetPath(tx), start, err)
	return res, err
}

func (m Metrics) observe(call, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.total.WithLabelValues(call, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(call, path).Observe(time.Since(start).Seconds())
}
