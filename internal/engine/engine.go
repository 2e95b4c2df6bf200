// Package engine turns oscillator state into frames. It owns the yaw and pitch
// oscillators, the scene and a rasterizer, and runs the redraw loop that hands
// finished frames to a presenter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/spinframe/internal/oscillator"
	"github.com/san-kum/spinframe/internal/raster"
	"github.com/san-kum/spinframe/internal/rotation"
	"golang.org/x/sync/errgroup"
)

// ErrPresenterDone is returned by a presenter to end Run without an error.
var ErrPresenterDone = errors.New("engine: presenter done")

type Config struct {
	Yaw, Pitch oscillator.Config
	Raster     raster.Options
}

// Frame is one rendered image and the angles it was rendered at.
type Frame struct {
	Seq    uint64
	Angles rotation.Angles
	Buffer *raster.FrameBuffer
	Stats  raster.Stats
}

// Observer sees every frame the engine renders, on the rendering goroutine.
type Observer interface {
	Observe(f Frame)
}

type Engine struct {
	yaw, pitch *oscillator.Oscillator
	signal     *oscillator.Signal
	tris       []raster.Triangle
	rast       *raster.Rasterizer
	log        *slog.Logger

	// manual offsets added on top of the oscillators
	yawOff, pitchOff atomic.Int64
	frames           atomic.Uint64

	obsMu     sync.Mutex
	observers []Observer
}

// New builds an engine over tris. The slice is not copied and must not be
// modified afterwards. A nil logger discards output.
func New(cfg Config, tris []raster.Triangle, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sig := oscillator.NewSignal()
	yaw, err := oscillator.New(cfg.Yaw, oscillator.WithSignal(sig))
	if err != nil {
		return nil, fmt.Errorf("engine: yaw: %w", err)
	}
	pitch, err := oscillator.New(cfg.Pitch, oscillator.WithSignal(sig))
	if err != nil {
		return nil, fmt.Errorf("engine: pitch: %w", err)
	}
	return &Engine{
		yaw:    yaw,
		pitch:  pitch,
		signal: sig,
		tris:   tris,
		rast:   raster.New(cfg.Raster),
		log:    logger,
	}, nil
}

// Start runs both oscillators on their own timers.
func (e *Engine) Start() {
	e.yaw.Start()
	e.pitch.Start()
	e.log.Info("oscillators started",
		"yaw_interval", e.yaw.Config().Interval,
		"pitch_interval", e.pitch.Config().Interval)
}

func (e *Engine) Stop() {
	e.yaw.Stop()
	e.pitch.Stop()
	e.log.Info("oscillators stopped", "frames", e.frames.Load())
}

func (e *Engine) Running() bool { return e.yaw.Running() || e.pitch.Running() }

// Toggle stops a running engine or starts a stopped one, and reports whether it
// is now running.
func (e *Engine) Toggle() bool {
	if e.Running() {
		e.Stop()
		return false
	}
	e.Start()
	return true
}

// Step ticks both oscillators once, outside of any timer.
func (e *Engine) Step() {
	e.yaw.Tick()
	e.pitch.Tick()
}

// Nudge shifts the displayed angles by the given degrees and requests a redraw.
func (e *Engine) Nudge(dYaw, dPitch int) {
	e.yawOff.Add(int64(dYaw))
	e.pitchOff.Add(int64(dPitch))
	e.signal.Notify()
}

// Angles is a snapshot of the current yaw and pitch in degrees. The two
// reads are independent, so a snapshot may pair a fresh yaw with a pitch one
// tick older.
func (e *Engine) Angles() rotation.Angles {
	return rotation.Angles{
		Yaw:   e.yaw.Value() + int(e.yawOff.Load()),
		Pitch: e.pitch.Value() + int(e.pitchOff.Load()),
	}
}

func (e *Engine) Signal() *oscillator.Signal { return e.signal }

func (e *Engine) AddObserver(o Observer) {
	e.obsMu.Lock()
	e.observers = append(e.observers, o)
	e.obsMu.Unlock()
}

// Frames returns the number of frames rendered so far.
func (e *Engine) Frames() uint64 { return e.frames.Load() }

func (e *Engine) Triangles() int { return len(e.tris) }

func (e *Engine) Options() raster.Options { return e.rast.Options() }

// Frame renders the current angles into a new w×h buffer.
func (e *Engine) Frame(w, h int) (Frame, error) {
	a := e.Angles()
	fb, st, err := e.rast.Render(w, h, a.Transform(), e.tris)
	if err != nil {
		return Frame{}, err
	}
	seq := e.frames.Add(1)
	e.log.Debug("frame", "seq", seq, "yaw", a.Yaw, "pitch", a.Pitch,
		"width", w, "height", h, "covered", st.Covered, "written", st.Written)
	f := Frame{Seq: seq, Angles: a, Buffer: fb, Stats: st}

	e.obsMu.Lock()
	for _, o := range e.observers {
		o.Observe(f)
	}
	e.obsMu.Unlock()
	return f, nil
}

// Run renders a frame every time the redraw signal fires and passes it to
// present. Notifications that arrive while a frame is in flight collapse into
// one redraw. viewport is asked for the frame size on every redraw; a zero
// size skips the frame. Run returns nil when ctx is cancelled or present
// returns ErrPresenterDone, and the first other error otherwise.
func (e *Engine) Run(ctx context.Context, viewport func() (int, int), present func(Frame) error) error {
	g, ctx := errgroup.WithContext(ctx)
	frames := make(chan Frame, 1)

	e.signal.Notify()

	g.Go(func() error {
		defer close(frames)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-e.signal.C():
			}
			w, h := viewport()
			if w <= 0 || h <= 0 {
				e.log.Debug("skipping frame", "width", w, "height", h)
				continue
			}
			f, err := e.Frame(w, h)
			if err != nil {
				return err
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		for f := range frames {
			if err := present(f); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, ErrPresenterDone) {
		return nil
	}
	return err
}

// Throttle wraps present so that consecutive calls are at least interval
// apart. Frames are delayed, not dropped; the engine coalesces redraws while a
// call is waiting. Cancelling ctx during a wait returns ErrPresenterDone.
func Throttle(ctx context.Context, interval time.Duration, present func(Frame) error) func(Frame) error {
	var last time.Time
	return func(f Frame) error {
		if wait := interval - time.Since(last); !last.IsZero() && wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return ErrPresenterDone
			}
		}
		last = time.Now()
		return present(f)
	}
}
