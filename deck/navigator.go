package deck

import "sync"

// Phase is the transition stage of a Navigator.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExiting
	PhaseEntering
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExiting:
		return "exiting"
	case PhaseEntering:
		return "entering"
	default:
		return "unknown"
	}
}

// State is a snapshot of a Navigator.
type State struct {
	Index int // current slide
	Total int
	Phase Phase
	From  int // slide being left while exiting
	To    int // slide being entered while exiting or entering
}

// Animating reports whether a transition is in flight.
func (s State) Animating() bool {
	return s.Phase != PhaseIdle
}

// Navigator walks an ordered slide sequence one transition at a time. Requests that
// arrive while a transition is running are dropped, not queued.
type Navigator struct {
	mu        sync.Mutex
	total     int
	index     int
	from, to  int
	phase     Phase
	gen       uint64
	closed    bool
	effects   Effects
	observers []func(State)
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithEffects attaches exit and enter effects. Without effects navigation is immediate.
func WithEffects(fx Effects) NavigatorOption {
	return func(n *Navigator) {
		n.effects = fx
	}
}

// WithObserver registers fn to receive every state change. fn runs outside the
// navigator's lock and may call back into it.
func WithObserver(fn func(State)) NavigatorOption {
	return func(n *Navigator) {
		n.observers = append(n.observers, fn)
	}
}

// NewNavigator creates a navigator over total slides starting at initial, clamped
// into range.
func NewNavigator(total, initial int, opts ...NavigatorOption) *Navigator {
	if total < 1 {
		total = 1
	}
	n := &Navigator{total: total, index: clamp(initial, total)}
	n.from, n.to = n.index, n.index
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func clamp(i, total int) int {
	if i < 0 {
		return 0
	}
	if i >= total {
		return total - 1
	}
	return i
}

// State returns the current snapshot.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshot()
}

// Index returns the current slide.
func (n *Navigator) Index() int {
	return n.State().Index
}

func (n *Navigator) snapshot() State {
	return State{Index: n.index, Total: n.total, Phase: n.phase, From: n.from, To: n.to}
}

// Next advances one slide. It is a no-op on the last slide.
func (n *Navigator) Next() bool {
	return n.start(func(i int) int { return i + 1 })
}

// Prev goes back one slide. It is a no-op on the first slide.
func (n *Navigator) Prev() bool {
	return n.start(func(i int) int { return i - 1 })
}

// First jumps to the first slide.
func (n *Navigator) First() bool {
	return n.start(func(int) int { return 0 })
}

// Last jumps to the last slide.
func (n *Navigator) Last() bool {
	return n.start(func(int) int { return n.total - 1 })
}

// GoTo jumps to slide j. Out-of-range targets and the current slide are ignored.
func (n *Navigator) GoTo(j int) bool {
	return n.start(func(int) int { return j })
}

// Do applies an input action and reports whether it started a transition.
func (n *Navigator) Do(a Action) bool {
	switch a {
	case ActionNext:
		return n.Next()
	case ActionPrev:
		return n.Prev()
	case ActionFirst:
		return n.First()
	case ActionLast:
		return n.Last()
	default:
		return false
	}
}

// start begins a transition to target(current). It reports whether the request was
// accepted.
func (n *Navigator) start(target func(int) int) bool {
	n.mu.Lock()
	if n.closed || n.phase != PhaseIdle {
		n.mu.Unlock()
		return false
	}
	j := target(n.index)
	if j < 0 || j >= n.total || j == n.index {
		n.mu.Unlock()
		return false
	}
	n.gen++
	gen := n.gen
	n.phase = PhaseExiting
	n.from, n.to = n.index, j
	from := n.index
	fx := n.effects
	st := n.snapshot()
	n.mu.Unlock()

	n.notify(st)
	if fx == nil {
		n.exited(gen)
		return true
	}
	fx.Exit(from, func() { n.exited(gen) })
	return true
}

func (n *Navigator) exited(gen uint64) {
	n.mu.Lock()
	if n.closed || n.gen != gen || n.phase != PhaseExiting {
		n.mu.Unlock()
		return
	}
	n.index = n.to
	n.phase = PhaseEntering
	to := n.to
	fx := n.effects
	st := n.snapshot()
	n.mu.Unlock()

	n.notify(st)
	if fx == nil {
		n.entered(gen)
		return
	}
	fx.Enter(to, func() { n.entered(gen) })
}

func (n *Navigator) entered(gen uint64) {
	n.mu.Lock()
	if n.closed || n.gen != gen || n.phase != PhaseEntering {
		n.mu.Unlock()
		return
	}
	n.phase = PhaseIdle
	n.from = n.index
	st := n.snapshot()
	n.mu.Unlock()

	n.notify(st)
}

func (n *Navigator) notify(st State) {
	for _, fn := range n.observers {
		fn(st)
	}
}

// Close cancels any in-flight effects. Later requests are ignored.
func (n *Navigator) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	fx := n.effects
	n.mu.Unlock()

	if s, ok := fx.(interface{ Stop() }); ok {
		s.Stop()
	}
}
