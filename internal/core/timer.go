package core

import "time"

// maxLag is how many steps a caller may fall behind before the backlog is
// dropped instead of replayed in a burst.
const maxLag = 4

// FixedStep paces ticks at a steady rate. The first tick is due immediately
// and later ticks fall due one step apart.
type FixedStep struct {
	step time.Duration
	next time.Time

	now func() time.Time
}

// NewFixedStep returns a pacer for tps ticks per second; non-positive rates
// fall back to 60.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. The tick already due keeps its deadline.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a tick is due and, if so, schedules the next one.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.next.IsZero() {
		f.next = now
	}
	if now.Before(f.next) {
		return false
	}
	f.next = f.next.Add(f.step)
	if now.Sub(f.next) > maxLag*f.step {
		f.next = now.Add(f.step)
	}
	return true
}

// Until returns how long to wait before the next tick is due.
func (f *FixedStep) Until() time.Duration {
	if f.next.IsZero() {
		return 0
	}
	return max(f.next.Sub(f.now()), 0)
}
