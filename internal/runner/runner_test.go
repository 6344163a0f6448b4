package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/sims/sand"
)

type countingObserver struct {
	ticks      int
	dispatched int
}

func (c *countingObserver) ObserveTick(rep sand.Report, _ sand.Census, _ time.Duration) {
	c.ticks++
	c.dispatched += rep.Dispatched
}

func sandWorld(t *testing.T) *sand.World {
	t.Helper()
	w, err := sand.New(20, 20)
	require.NoError(t, err)
	w.Grid().FillRect(5, 10, 10, 5, sand.KindSand, nil)
	return w
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestRunFixedTicks(t *testing.T) {
	w := sandWorld(t)
	obs := &countingObserver{}

	res, err := Run(context.Background(), w, Options{Ticks: 10}, quiet(), obs)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Ticks)
	assert.Equal(t, uint64(10), w.Tick())
	assert.Equal(t, 10, obs.ticks)
	assert.Equal(t, 10*20*20, obs.dispatched)
	assert.Equal(t, 50, res.Census[sand.KindSand])
}

func TestRunPaced(t *testing.T) {
	w := sandWorld(t)
	res, err := Run(context.Background(), w, Options{Ticks: 3, TPS: 500}, quiet())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Ticks)
}

func TestRunCancelled(t *testing.T) {
	w := sandWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, w, Options{Ticks: 10}, quiet())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, res.Ticks)

	// An open-ended run treats cancellation as the normal end.
	res, err = Run(ctx, w, Options{}, quiet())
	assert.NoError(t, err)
	assert.Zero(t, res.Ticks)
}

func TestRunUntilDeadline(t *testing.T) {
	w := sandWorld(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := Run(ctx, w, Options{TPS: 200}, quiet())
	require.NoError(t, err)
	assert.Positive(t, res.Ticks)
}

func TestRunLogsCensus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	_, err := Run(context.Background(), sandWorld(t), Options{Ticks: 4, LogEvery: 2}, logger)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "census")
	assert.Contains(t, out, "tick=4")
	assert.Contains(t, out, "sand=50")
}

func TestSweep(t *testing.T) {
	build := func(seed int64) (*sand.World, error) {
		if seed == 13 {
			return nil, errors.New("unlucky")
		}
		cfg := sand.DefaultConfig()
		cfg.Width, cfg.Height, cfg.Seed = 24, 24, seed
		w, err := sand.NewWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		w.Grid().FillRect(4, 12, 16, 4, sand.KindSand, w.RNG())
		w.Grid().FillRect(0, 0, 24, 3, sand.KindWater, w.RNG())
		return w, nil
	}
	opts := SweepOptions{Seeds: []int64{5, 1, 13, 3, 2, 4}, Ticks: 30, Workers: 3}

	first := Sweep(context.Background(), build, opts)
	require.Len(t, first, 6)
	for i, res := range first {
		if i > 0 {
			assert.Less(t, first[i-1].Seed, res.Seed)
		}
		if res.Seed == 13 {
			assert.EqualError(t, res.Err, "unlucky")
			continue
		}
		require.NoError(t, res.Err)
		assert.Equal(t, 64, res.Final[sand.KindSand], "sand is never destroyed")
		assert.Equal(t, res.Initial[sand.KindSand], res.Final[sand.KindSand])
	}

	second := Sweep(context.Background(), build, opts)
	for i := range first {
		assert.Equal(t, first[i].Final, second[i].Final, "seed %d", first[i].Seed)
	}
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	build := func(seed int64) (*sand.World, error) { return sand.New(4, 4) }

	results := Sweep(ctx, build, SweepOptions{Seeds: []int64{1, 2, 3}, Ticks: 5, Workers: 1})
	require.Len(t, results, 3)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}
