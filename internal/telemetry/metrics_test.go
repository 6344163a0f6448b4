package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/sims/sand"
)

func TestObserveTick(t *testing.T) {
	w, err := sand.New(16, 16)
	require.NoError(t, err)
	w.Grid().FillRect(0, 10, 16, 2, sand.KindSand, nil)

	m := New()
	for range 3 {
		start := time.Now()
		w.Step()
		m.ObserveTick(w.LastReport(), w.Census(), time.Since(start))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, float64(3*16*16), testutil.ToFloat64(m.dispatched))
	assert.Equal(t, 32.0, testutil.ToFloat64(m.population.WithLabelValues("sand")))
	assert.Equal(t, float64(16*16-32), testutil.ToFloat64(m.population.WithLabelValues("empty")))
	assert.Positive(t, testutil.ToFloat64(m.outcomes.WithLabelValues("moved")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.tickSeconds))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveCensus(sand.Census{})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sand_particles{kind="water"} 0`)
	assert.Contains(t, string(body), "sand_ticks_total 0")
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", New().Handler(), log.New(io.Discard)) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReportsListenErrors(t *testing.T) {
	err := Serve(context.Background(), "127.0.0.1:-1", New().Handler(), log.New(io.Discard))
	assert.Error(t, err)
}
