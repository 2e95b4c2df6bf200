package oscillator

// Signal is a coalescing wake-up: any number of Notify calls between two
// receives leave exactly one pending notification.
type Signal struct {
	ch chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify marks the signal pending. It never blocks and is safe to call from
// any goroutine.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that receives once per pending notification.
func (s *Signal) C() <-chan struct{} { return s.ch }

func (s *Signal) Pending() bool { return len(s.ch) > 0 }

// Drain clears a pending notification and reports whether there was one.
func (s *Signal) Drain() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
