package utils

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	// collectors cannot be registered twice
	_, err = NewMetrics(reg)
	assert.True(t, errors.ErrHuman.Is(err))

	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/refund"}}
	ok := ledgertest.Decorate(&ledgertest.Handler{}, m)
	fail := ledgertest.Decorate(&ledgertest.Handler{DeliverErr: errors.ErrState}, m)

	ctx := context.Background()
	_, err = ok.Check(ctx, store.MemStore(), tx)
	require.NoError(t, err)
	_, err = ok.Deliver(ctx, store.MemStore(), tx)
	require.NoError(t, err)
	_, err = ok.Deliver(ctx, store.MemStore(), tx)
	require.NoError(t, err)
	_, err = fail.Deliver(ctx, store.MemStore(), tx)
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	var observed uint64
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch f.GetName() {
			case "ledger_tx_total":
				counts[labels(metric)] = metric.GetCounter().GetValue()
			case "ledger_tx_duration_seconds":
				observed += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, map[string]float64{
		"check escrow/refund 0":    1,
		"deliver escrow/refund 0":  2,
		"deliver escrow/refund 10": 1,
	}, counts)
	assert.Equal(t, uint64(4), observed)
}

// labels renders call, path and code label values of a metric.
func labels(m *dto.Metric) string {
	vals := make(map[string]string)
	for _, l := range m.GetLabel() {
		vals[l.GetName()] = l.GetValue()
	}
	return vals["call"] + " " + vals["path"] + " " + vals["code"]
}
