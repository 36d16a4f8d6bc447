// Package loop drives fixed-rate simulation callbacks from a variable-rate
// frame clock. Everything runs on the caller's goroutine: Advance runs each
// due callback to completion before returning.
package loop

import "time"

// MaxCatchUp bounds how many times one ticker may fire in a single Advance so
// a long stall does not freeze the frame.
const MaxCatchUp = 5

// Ticker is a named fixed-rate callback.
type Ticker struct {
	name  string
	step  time.Duration
	fn    func()
	accum time.Duration
	fired uint64
}

// Name returns the ticker's name.
func (t *Ticker) Name() string { return t.name }

// Step returns the ticker's interval.
func (t *Ticker) Step() time.Duration { return t.step }

// Fired returns how many times the ticker has run.
func (t *Ticker) Fired() uint64 { return t.fired }

// Scheduler owns a set of tickers and the running flag that gates them.
type Scheduler struct {
	tickers []*Ticker
	running bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run once per step while the scheduler is running.
// Tickers fire in registration order.
func (s *Scheduler) Every(name string, step time.Duration, fn func()) *Ticker {
	if step <= 0 {
		step = time.Second / 60
	}
	t := &Ticker{name: name, step: step, fn: fn}
	s.tickers = append(s.tickers, t)
	return t
}

// Start begins accepting time. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.reset()
}

// Stop halts every ticker and discards pending time, so nothing fires until
// the next Start. Calling Stop twice is a no-op.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.reset()
}

// Running reports whether the scheduler is started.
func (s *Scheduler) Running() bool { return s.running }

// Advance feeds dt of wall time to every ticker and runs the ones that came
// due. It returns the number of callbacks run. A stopped scheduler ignores dt.
func (s *Scheduler) Advance(dt time.Duration) int {
	if !s.running || dt <= 0 {
		return 0
	}
	ran := 0
	for _, t := range s.tickers {
		t.accum += dt
		n := 0
		for t.accum >= t.step && n < MaxCatchUp {
			t.accum -= t.step
			t.fired++
			n++
			t.fn()
			if !s.running {
				// A callback stopped the scheduler.
				return ran + n
			}
		}
		if t.accum >= t.step {
			t.accum = t.accum % t.step
		}
		ran += n
	}
	return ran
}

func (s *Scheduler) reset() {
	for _, t := range s.tickers {
		t.accum = 0
	}
}

// Stopwatch measures wall time between frames for Advance.
type Stopwatch struct {
	last time.Time
	now  func() time.Time
}

// NewStopwatch creates a stopwatch reading the system clock.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Lap returns the time since the previous Lap. The first call returns zero.
func (w *Stopwatch) Lap() time.Duration {
	now := w.now()
	if w.last.IsZero() {
		w.last = now
		return 0
	}
	d := now.Sub(w.last)
	w.last = now
	return d
}

// Reset forgets the previous lap so a pause is not counted.
func (w *Stopwatch) Reset() {
	w.last = time.Time{}
}
