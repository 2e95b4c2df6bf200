package engine_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spinframe/internal/engine"
	"github.com/san-kum/spinframe/internal/oscillator"
	"github.com/san-kum/spinframe/internal/raster"
	"github.com/san-kum/spinframe/internal/rotation"
	"github.com/san-kum/spinframe/internal/scene"
)

func testConfig(interval time.Duration) engine.Config {
	return engine.Config{
		Yaw:    oscillator.Config{Max: 360, Min: 0, Step: 6, Interval: interval},
		Pitch:  oscillator.Config{Max: 90, Min: -90, Step: 3, Interval: interval},
		Raster: raster.DefaultOptions(),
	}
}

type recorder struct {
	seqs []uint64
}

func (r *recorder) Observe(f engine.Frame) { r.seqs = append(r.seqs, f.Seq) }

func fixed(w, h int) func() (int, int) {
	return func() (int, int) { return w, h }
}

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		var err error
		e, err = engine.New(testConfig(time.Hour), scene.Default(), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		e.Stop()
	})

	It("rejects invalid oscillator configs", func() {
		cfg := testConfig(time.Hour)
		cfg.Pitch.Step = 0
		_, err := engine.New(cfg, scene.Default(), nil)
		Expect(err).To(MatchError(oscillator.ErrInvalidConfig))
	})

	It("starts at the seeds", func() {
		Expect(e.Angles()).To(Equal(rotation.Angles{Yaw: 0, Pitch: 0}))
	})

	It("steps both oscillators", func() {
		e.Step()
		e.Step()
		Expect(e.Angles()).To(Equal(rotation.Angles{Yaw: 12, Pitch: 6}))
	})

	It("adds nudges on top of the oscillators", func() {
		e.Nudge(10, -5)
		e.Step()
		Expect(e.Angles()).To(Equal(rotation.Angles{Yaw: 16, Pitch: -2}))
		Expect(e.Signal().Pending()).To(BeTrue())
	})

	It("renders a frame at the snapshot angles", func() {
		e.Step()
		f, err := e.Frame(120, 80)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Seq).To(BeEquivalentTo(1))
		Expect(f.Angles).To(Equal(rotation.Angles{Yaw: 6, Pitch: 3}))
		Expect(f.Buffer.Width).To(Equal(120))
		Expect(f.Buffer.Height).To(Equal(80))
		Expect(f.Stats.Triangles).To(Equal(4))
		Expect(f.Stats.Written).To(BeNumerically(">", 0))
		Expect(e.Frames()).To(BeEquivalentTo(1))
	})

	It("feeds observers every frame", func() {
		obs := &recorder{}
		e.AddObserver(obs)
		for i := 0; i < 3; i++ {
			_, err := e.Frame(16, 16)
			Expect(err).NotTo(HaveOccurred())
			e.Step()
		}
		Expect(obs.seqs).To(Equal([]uint64{1, 2, 3}))
	})

	It("fails on an empty viewport", func() {
		_, err := e.Frame(0, 10)
		Expect(err).To(MatchError(raster.ErrInvalidViewport))
	})

	It("toggles the timers", func() {
		Expect(e.Running()).To(BeFalse())
		Expect(e.Toggle()).To(BeTrue())
		Expect(e.Running()).To(BeTrue())
		Expect(e.Toggle()).To(BeFalse())
		Expect(e.Running()).To(BeFalse())
	})

	Describe("Run", func() {
		It("coalesces pending notifications into one frame", func() {
			for i := 0; i < 5; i++ {
				e.Signal().Notify()
			}
			var presented atomic.Int32
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() {
				done <- e.Run(ctx, fixed(64, 64), func(engine.Frame) error {
					presented.Add(1)
					return nil
				})
			}()

			Eventually(presented.Load).Should(BeEquivalentTo(1))
			Consistently(presented.Load, 100*time.Millisecond).Should(BeEquivalentTo(1))
			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("redraws after each nudge", func() {
			var last atomic.Value
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				_ = e.Run(ctx, fixed(32, 32), func(f engine.Frame) error {
					last.Store(f.Angles)
					return nil
				})
			}()

			Eventually(last.Load).Should(Equal(rotation.Angles{}))
			e.Nudge(30, 0)
			Eventually(last.Load).Should(Equal(rotation.Angles{Yaw: 30}))
		})

		It("skips frames while the viewport is empty", func() {
			var size atomic.Int32
			var presented atomic.Int32
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				_ = e.Run(ctx, func() (int, int) {
					s := int(size.Load())
					return s, s
				}, func(engine.Frame) error {
					presented.Add(1)
					return nil
				})
			}()

			Consistently(presented.Load, 100*time.Millisecond).Should(BeZero())
			size.Store(16)
			e.Nudge(1, 1)
			Eventually(presented.Load).Should(BeEquivalentTo(1))
		})

		It("stops cleanly when the presenter is done", func() {
			err := e.Run(context.Background(), fixed(16, 16), func(engine.Frame) error {
				return engine.ErrPresenterDone
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns presenter errors", func() {
			boom := errors.New("boom")
			err := e.Run(context.Background(), fixed(16, 16), func(engine.Frame) error {
				return boom
			})
			Expect(err).To(MatchError(boom))
		})

		It("keeps drawing while the oscillators run", func() {
			fast, err := engine.New(testConfig(5*time.Millisecond), scene.Default(), nil)
			Expect(err).NotTo(HaveOccurred())
			fast.Start()
			defer fast.Stop()

			var presented atomic.Int32
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				_ = fast.Run(ctx, fixed(48, 48), func(engine.Frame) error {
					presented.Add(1)
					return nil
				})
			}()

			Eventually(presented.Load).Should(BeNumerically(">=", 5))
			Expect(fast.Angles().Yaw).To(BeNumerically(">", 0))
		})
	})

	Describe("Throttle", func() {
		It("spaces out presenter calls", func() {
			var calls int
			present := engine.Throttle(context.Background(), 20*time.Millisecond, func(engine.Frame) error {
				calls++
				return nil
			})
			start := time.Now()
			for i := 0; i < 3; i++ {
				Expect(present(engine.Frame{})).To(Succeed())
			}
			Expect(calls).To(Equal(3))
			Expect(time.Since(start)).To(BeNumerically(">=", 40*time.Millisecond))
		})

		It("passes presenter errors through", func() {
			present := engine.Throttle(context.Background(), time.Millisecond, func(engine.Frame) error {
				return engine.ErrPresenterDone
			})
			Expect(present(engine.Frame{})).To(MatchError(engine.ErrPresenterDone))
		})

		It("stops waiting when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			var calls int
			present := engine.Throttle(ctx, time.Hour, func(engine.Frame) error {
				calls++
				return nil
			})
			Expect(present(engine.Frame{})).To(Succeed())

			time.AfterFunc(20*time.Millisecond, cancel)
			start := time.Now()
			Expect(present(engine.Frame{})).To(MatchError(engine.ErrPresenterDone))
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
			Expect(calls).To(Equal(1))
		})

		It("ends Run cleanly when cancelled mid-wait", func() {
			eng, err := engine.New(testConfig(time.Hour), scene.Default(), nil)
			Expect(err).NotTo(HaveOccurred())
			ctx, cancel := context.WithCancel(context.Background())
			var presented atomic.Int32
			done := make(chan error, 1)
			go func() {
				done <- eng.Run(ctx, func() (int, int) { return 20, 20 },
					engine.Throttle(ctx, time.Hour, func(engine.Frame) error {
						presented.Add(1)
						return nil
					}))
			}()
			Eventually(presented.Load).Should(BeEquivalentTo(1))
			eng.Nudge(1, 0)
			time.Sleep(20 * time.Millisecond)
			cancel()
			Eventually(done).Should(Receive(BeNil()))
			Expect(presented.Load()).To(BeEquivalentTo(1))
		})
	})
})
