package listing

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period for free-text search.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer runs only the last of a burst of actions, once no new action
// has arrived for the configured delay.
type Debouncer struct {
	mu       sync.Mutex
	idle     *sync.Cond
	delay    time.Duration
	timer    *time.Timer
	pending  func()
	gen      uint64
	inflight int
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	d := &Debouncer{delay: delay}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Trigger schedules fn, replacing any action still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	d.pending = fn

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the waiting action now, if there is one, and returns once no
// action is running, including one already started by the timer.
func (d *Debouncer) Flush() {
	if fn := d.take(0, false); fn != nil {
		d.run(fn)
	}

	d.mu.Lock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}

// Stop drops the waiting action without running it.
func (d *Debouncer) Stop() {
	if fn := d.take(0, false); fn != nil {
		d.finish()
	}
}

func (d *Debouncer) fire(gen uint64) {
	if fn := d.take(gen, true); fn != nil {
		d.run(fn)
	}
}

func (d *Debouncer) run(fn func()) {
	defer d.finish()
	fn()
}

func (d *Debouncer) finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inflight--
	if d.inflight == 0 {
		d.idle.Broadcast()
	}
}

// take removes the pending action and counts it as in flight. When checkGen
// is set it only does so if no newer Trigger has happened since gen was
// issued.
func (d *Debouncer) take(gen uint64, checkGen bool) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if checkGen && gen != d.gen {
		return nil
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	if fn != nil {
		d.inflight++
	}
	return fn
}
