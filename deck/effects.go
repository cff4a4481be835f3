package deck

import (
	"sync"
	"time"
)

// Default transition timings.
const (
	DefaultExitDuration  = 300 * time.Millisecond
	DefaultEnterDuration = 500 * time.Millisecond
	DefaultStagger       = 80 * time.Millisecond
)

// Effects runs the visual part of a transition. Implementations must call done
// exactly once when the effect finishes, possibly synchronously.
type Effects interface {
	Exit(slide int, done func())
	Enter(slide int, done func())
}

// StepKind tells an effect hook which half of a transition an element is in.
type StepKind int

const (
	StepExit StepKind = iota
	StepEnter
)

// Step is one animatable element starting its effect.
type Step struct {
	Kind    StepKind
	Slide   int
	Element int
}

// TimedEffects schedules fixed-duration exits and staggered entrances with timers.
// All exit elements fade together; entrance elements start Stagger apart.
type TimedEffects struct {
	ExitDuration  time.Duration
	EnterDuration time.Duration
	Stagger       time.Duration
	// Elements returns how many animatable elements slide has. Nil means one.
	Elements func(slide int) int
	// Hook, if set, is called as each element starts its effect.
	Hook func(Step)

	mu      sync.Mutex
	next    int
	timers  map[int]*time.Timer
	stopped bool
}

// NewTimedEffects returns effects with the default timings.
func NewTimedEffects(elements func(slide int) int) *TimedEffects {
	return &TimedEffects{
		ExitDuration:  DefaultExitDuration,
		EnterDuration: DefaultEnterDuration,
		Stagger:       DefaultStagger,
		Elements:      elements,
	}
}

func (e *TimedEffects) count(slide int) int {
	if e.Elements == nil {
		return 1
	}
	if n := e.Elements(slide); n > 0 {
		return n
	}
	return 1
}

// Exit fades every element of slide at once.
func (e *TimedEffects) Exit(slide int, done func()) {
	for i := range e.count(slide) {
		e.hook(Step{Kind: StepExit, Slide: slide, Element: i})
	}
	e.after(e.ExitDuration, done)
}

// Enter reveals the elements of slide one after another.
func (e *TimedEffects) Enter(slide int, done func()) {
	n := e.count(slide)
	for i := range n {
		step := Step{Kind: StepEnter, Slide: slide, Element: i}
		if i == 0 {
			e.hook(step)
			continue
		}
		e.after(time.Duration(i)*e.Stagger, func() { e.hook(step) })
	}
	e.after(e.EnterDuration+time.Duration(n-1)*e.Stagger, done)
}

func (e *TimedEffects) hook(s Step) {
	if e.Hook != nil {
		e.Hook(s)
	}
}

// after runs fn once d has elapsed unless Stop is called first.
func (e *TimedEffects) after(d time.Duration, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.timers == nil {
		e.timers = make(map[int]*time.Timer)
	}
	id := e.next
	e.next++
	e.timers[id] = time.AfterFunc(d, func() {
		e.mu.Lock()
		_, live := e.timers[id]
		delete(e.timers, id)
		stopped := e.stopped
		e.mu.Unlock()
		if live && !stopped {
			fn()
		}
	})
}

// Pending returns the number of scheduled timers that have not fired.
func (e *TimedEffects) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// Stop cancels every pending timer. Later effects never complete.
func (e *TimedEffects) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
}
