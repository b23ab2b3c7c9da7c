package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()

	if !prometheus.DefaultRegisterer.Unregister(NormalizedTotal) {
		t.Fatal("expected NormalizedTotal to be registered")
	}
	// Put it back for any later test in this process.
	prometheus.MustRegister(NormalizedTotal)
}

func TestNormalizedTotal_CountsByModeAndLabel(t *testing.T) {
	c := NormalizedTotal.WithLabelValues("sentiment", "positive")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("expected counter delta 1, got %v", got)
	}
}
