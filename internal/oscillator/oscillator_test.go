package oscillator_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spinframe/internal/oscillator"
)

var yawConfig = oscillator.Config{Max: 360, Min: 0, Step: 6, Interval: 50 * time.Millisecond}

func tickN(o *oscillator.Oscillator, n int) {
	for i := 0; i < n; i++ {
		o.Tick()
	}
}

var _ = Describe("Config", func() {
	DescribeTable("rejects configurations that cannot tick",
		func(cfg oscillator.Config) {
			Expect(cfg.Validate()).To(MatchError(oscillator.ErrInvalidConfig))
			_, err := oscillator.New(cfg)
			Expect(err).To(MatchError(oscillator.ErrInvalidConfig))
		},
		Entry("zero step", oscillator.Config{Max: 10, Step: 0, Interval: time.Millisecond}),
		Entry("negative step", oscillator.Config{Max: 10, Step: -1, Interval: time.Millisecond}),
		Entry("zero interval", oscillator.Config{Max: 10, Step: 1}),
		Entry("inverted bounds", oscillator.Config{Max: 0, Min: 10, Step: 1, Interval: time.Millisecond}),
	)

	It("accepts the yaw defaults", func() {
		Expect(yawConfig.Validate()).To(Succeed())
	})
})

var _ = Describe("Tick", func() {
	var o *oscillator.Oscillator

	BeforeEach(func() {
		var err error
		o, err = oscillator.New(yawConfig)
		Expect(err).NotTo(HaveOccurred())
	})

	It("publishes the seed before the first tick", func() {
		seeded, err := oscillator.New(oscillator.Config{Max: 90, Min: -90, Step: 3, Interval: time.Second, Seed: 45})
		Expect(err).NotTo(HaveOccurred())
		Expect(seeded.Value()).To(Equal(45))
		seeded.Tick()
		Expect(seeded.Value()).To(Equal(48))
	})

	It("reaches max after 60 ticks of 6 while still ascending", func() {
		tickN(o, 60)
		Expect(o.Value()).To(Equal(360))
		Expect(o.Descending()).To(BeFalse())
		Expect(o.Ticks()).To(BeEquivalentTo(60))
	})

	It("overshoots max by one step and then turns", func() {
		tickN(o, 61)
		Expect(o.Value()).To(Equal(366))
		Expect(o.Descending()).To(BeFalse())

		o.Tick()
		Expect(o.Descending()).To(BeTrue())
		Expect(o.Value()).To(Equal(360))
	})

	It("overshoots min by one step and then turns", func() {
		// up to 366, down to -6, then back up
		tickN(o, 61+62)
		Expect(o.Value()).To(Equal(-6))
		Expect(o.Descending()).To(BeTrue())

		o.Tick()
		Expect(o.Descending()).To(BeFalse())
		Expect(o.Value()).To(Equal(0))
	})

	It("stays within one step of the bounds", func() {
		odd := oscillator.Config{Max: 10, Min: -7, Step: 4, Interval: time.Millisecond}
		o, err := oscillator.New(odd)
		Expect(err).NotTo(HaveOccurred())

		prevDescending := false
		for i := 0; i < 500; i++ {
			before := o.Value()
			o.Tick()
			v := o.Value()
			Expect(v).To(BeNumerically(">=", odd.Min-odd.Step))
			Expect(v).To(BeNumerically("<=", odd.Max+odd.Step))

			if o.Descending() != prevDescending {
				// direction only turns once the previous value left [min,max]
				Expect(before > odd.Max || before < odd.Min).To(BeTrue(), "turned at %d", before)
			}
			prevDescending = o.Descending()
		}
	})

	It("fires the notify hook once per tick", func() {
		var calls atomic.Int32
		n, err := oscillator.New(yawConfig, oscillator.WithNotify(func() { calls.Add(1) }))
		Expect(err).NotTo(HaveOccurred())
		tickN(n, 5)
		Expect(calls.Load()).To(BeEquivalentTo(5))
	})

	It("publishes into a shared state cell", func() {
		state := &oscillator.AngleState{}
		n, err := oscillator.New(yawConfig, oscillator.WithState(state))
		Expect(err).NotTo(HaveOccurred())
		n.Tick()
		Expect(state.Load()).To(Equal(6))
		Expect(n.State()).To(BeIdenticalTo(state))
	})
})

var _ = Describe("Start and Stop", func() {
	fast := oscillator.Config{Max: 1000, Min: 0, Step: 1, Interval: 5 * time.Millisecond}

	It("ticks on its own once started", func() {
		o, err := oscillator.New(fast)
		Expect(err).NotTo(HaveOccurred())
		o.Start()
		DeferCleanup(o.Stop)

		Expect(o.Running()).To(BeTrue())
		Eventually(o.Value).Should(BeNumerically(">=", 3))
	})

	It("ignores a second Start", func() {
		var calls atomic.Int32
		o, err := oscillator.New(oscillator.Config{Max: 10, Step: 1, Interval: time.Hour},
			oscillator.WithNotify(func() { calls.Add(1) }))
		Expect(err).NotTo(HaveOccurred())

		o.Start()
		o.Start()
		DeferCleanup(o.Stop)

		// one loop, one immediate tick; the next one is an hour away
		Eventually(calls.Load).Should(BeEquivalentTo(1))
		Consistently(calls.Load, 50*time.Millisecond, 5*time.Millisecond).Should(BeEquivalentTo(1))
	})

	It("stops ticking after Stop", func() {
		o, err := oscillator.New(fast)
		Expect(err).NotTo(HaveOccurred())
		o.Start()
		Eventually(o.Value).Should(BeNumerically(">=", 2))

		o.Stop()
		Expect(o.Running()).To(BeFalse())
		// let an in-flight tick land
		time.Sleep(20 * time.Millisecond)
		v := o.Value()
		Consistently(o.Value, 60*time.Millisecond, 5*time.Millisecond).Should(Equal(v))
	})

	It("can be restarted and tolerates Stop when idle", func() {
		o, err := oscillator.New(fast)
		Expect(err).NotTo(HaveOccurred())
		o.Stop()

		o.Start()
		o.Stop()
		before := o.Ticks()
		o.Start()
		DeferCleanup(o.Stop)
		Eventually(o.Ticks).Should(BeNumerically(">", before))
	})
})

var _ = Describe("Signal", func() {
	It("coalesces notifications from independent oscillators", func() {
		sig := oscillator.NewSignal()
		yaw, err := oscillator.New(yawConfig, oscillator.WithSignal(sig))
		Expect(err).NotTo(HaveOccurred())
		pitch, err := oscillator.New(oscillator.Config{Max: 90, Min: -90, Step: 3, Interval: time.Second}, oscillator.WithSignal(sig))
		Expect(err).NotTo(HaveOccurred())

		tickN(yaw, 7)
		tickN(pitch, 4)

		Expect(sig.Pending()).To(BeTrue())
		Eventually(sig.C()).Should(Receive())
		Expect(sig.Pending()).To(BeFalse())
		Consistently(sig.C(), 20*time.Millisecond).ShouldNot(Receive())
	})

	It("drains a pending notification", func() {
		sig := oscillator.NewSignal()
		Expect(sig.Drain()).To(BeFalse())
		sig.Notify()
		sig.Notify()
		Expect(sig.Drain()).To(BeTrue())
		Expect(sig.Drain()).To(BeFalse())
	})
})
