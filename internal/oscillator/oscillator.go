package oscillator

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInvalidConfig indicates an oscillator configuration that cannot tick.
var ErrInvalidConfig = errors.New("oscillator: invalid config")

// Config describes one axis.
type Config struct {
	Max, Min int
	Step     int
	Interval time.Duration
	// Seed is the initial cursor.
	Seed int
}

func (c Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d: %w", c.Step, ErrInvalidConfig)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v: %w", c.Interval, ErrInvalidConfig)
	}
	if c.Min > c.Max {
		return fmt.Errorf("min %d above max %d: %w", c.Min, c.Max, ErrInvalidConfig)
	}
	return nil
}

// AngleState is a single-writer integer cell read by the render path.
type AngleState struct {
	v atomic.Int64
}

func (s *AngleState) Load() int { return int(s.v.Load()) }

func (s *AngleState) store(v int) { s.v.Store(int64(v)) }

// Option configures an Oscillator.
type Option func(*Oscillator)

// WithNotify sets a hook run after every tick, on the ticking goroutine.
func WithNotify(fn func()) Option {
	return func(o *Oscillator) { o.notify = fn }
}

// WithSignal notifies sig after every tick.
func WithSignal(sig *Signal) Option {
	return WithNotify(sig.Notify)
}

// WithState makes the oscillator publish into s instead of a private cell.
func WithState(s *AngleState) Option {
	return func(o *Oscillator) { o.state = s }
}

// Oscillator is a triangle-wave generator over [Min, Max].
type Oscillator struct {
	cfg    Config
	state  *AngleState
	notify func()

	mu         sync.Mutex // guards cursor, descending, ticks
	cursor     int
	descending bool
	ticks      uint64

	runMu sync.Mutex // guards quit
	quit  chan struct{}
}

func New(cfg Config, opts ...Option) (*Oscillator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Oscillator{cfg: cfg, cursor: cfg.Seed}
	for _, opt := range opts {
		opt(o)
	}
	if o.state == nil {
		o.state = &AngleState{}
	}
	o.state.store(cfg.Seed)
	return o, nil
}

// Tick advances the cursor by one step, publishes it and fires the notify hook.
func (o *Oscillator) Tick() {
	o.mu.Lock()
	if o.cursor > o.cfg.Max {
		o.descending = true
	}
	if o.cursor < o.cfg.Min {
		o.descending = false
	}
	if o.descending {
		o.cursor -= o.cfg.Step
	} else {
		o.cursor += o.cfg.Step
	}
	o.ticks++
	o.state.store(o.cursor)
	o.mu.Unlock()

	if o.notify != nil {
		o.notify()
	}
}

// Start begins ticking every Interval, with the first tick immediately. It is a
// no-op on a running oscillator.
func (o *Oscillator) Start() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	if o.quit != nil {
		return
	}
	quit := make(chan struct{})
	o.quit = quit
	go o.loop(quit)
}

func (o *Oscillator) loop(quit <-chan struct{}) {
	t := time.NewTicker(o.cfg.Interval)
	defer t.Stop()

	o.Tick()
	for {
		select {
		case <-quit:
			return
		case <-t.C:
			select {
			case <-quit:
				return
			default:
			}
			o.Tick()
		}
	}
}

// Stop cancels future ticks. A tick already running completes on its own;
// Stop does not wait for it.
func (o *Oscillator) Stop() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	if o.quit == nil {
		return
	}
	close(o.quit)
	o.quit = nil
}

func (o *Oscillator) Running() bool {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	return o.quit != nil
}

// Value returns the last published cursor.
func (o *Oscillator) Value() int { return o.state.Load() }

func (o *Oscillator) Descending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.descending
}

// Ticks returns the number of ticks applied so far.
func (o *Oscillator) Ticks() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ticks
}

func (o *Oscillator) State() *AngleState { return o.state }

func (o *Oscillator) Config() Config { return o.cfg }
