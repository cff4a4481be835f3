package deck

import "time"

// Effect timings for slide content.
const (
	CountDuration  = 2 * time.Second
	RevealDuration = time.Second
	RevealStagger  = 150 * time.Millisecond
)

// EaseOutCubic maps linear progress t in [0,1] to eased progress.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

func progress(start, now time.Time, delay, d time.Duration) float64 {
	elapsed := now.Sub(start) - delay
	if elapsed <= 0 {
		return 0
	}
	if d <= 0 || elapsed >= d {
		return 1
	}
	return float64(elapsed) / float64(d)
}

// CountUp animates a number from zero to Target each time it is activated.
type CountUp struct {
	Target   float64
	Duration time.Duration

	start  time.Time
	active bool
}

// Activate starts counting from zero at t.
func (c *CountUp) Activate(t time.Time) {
	c.start = t
	c.active = true
}

// Deactivate resets the counter to zero and re-arms it.
func (c *CountUp) Deactivate() {
	c.active = false
}

// Active reports whether the counter is running or finished.
func (c *CountUp) Active() bool {
	return c.active
}

// Value is the displayed number at now.
func (c *CountUp) Value(now time.Time) float64 {
	if !c.active {
		return 0
	}
	return c.Target * EaseOutCubic(progress(c.start, now, 0, c.Duration))
}

// Reveal grows a set of bars to their widths with a per-bar delay.
type Reveal struct {
	Widths   []float64 // percent, 0..100
	Duration time.Duration
	Stagger  time.Duration

	start  time.Time
	active bool
}

// Activate starts the reveal at t.
func (r *Reveal) Activate(t time.Time) {
	r.start = t
	r.active = true
}

// Deactivate collapses all bars and re-arms the reveal.
func (r *Reveal) Deactivate() {
	r.active = false
}

// Width is bar i's width at now.
func (r *Reveal) Width(i int, now time.Time) float64 {
	if !r.active || i < 0 || i >= len(r.Widths) {
		return 0
	}
	p := progress(r.start, now, time.Duration(i)*r.Stagger, r.Duration)
	return r.Widths[i] * EaseOutCubic(p)
}

// Activation holds the effects of one slide.
type Activation struct {
	Counters []*CountUp
	Bars     *Reveal
}

// NewActivation builds the effects a slide's layout calls for.
func NewActivation(s Slide) *Activation {
	a := &Activation{}
	switch s.Layout {
	case LayoutMetrics:
		for _, it := range s.Items {
			a.Counters = append(a.Counters, &CountUp{Target: it.Value, Duration: CountDuration})
		}
	case LayoutBars:
		widths := make([]float64, len(s.Items))
		for i, it := range s.Items {
			widths[i] = it.Value
		}
		a.Bars = &Reveal{Widths: widths, Duration: RevealDuration, Stagger: RevealStagger}
	}
	return a
}

// Activate starts every effect at t.
func (a *Activation) Activate(t time.Time) {
	for _, c := range a.Counters {
		c.Activate(t)
	}
	if a.Bars != nil {
		a.Bars.Activate(t)
	}
}

// Deactivate resets every effect.
func (a *Activation) Deactivate() {
	for _, c := range a.Counters {
		c.Deactivate()
	}
	if a.Bars != nil {
		a.Bars.Deactivate()
	}
}

// Stage tracks the effects of a whole sequence and keeps exactly the active slide armed.
type Stage struct {
	slides []*Activation
	active int
}

// NewStage builds activations for slides. No slide is active until Sync.
func NewStage(slides []Slide) *Stage {
	st := &Stage{slides: make([]*Activation, len(slides)), active: -1}
	for i, s := range slides {
		st.slides[i] = NewActivation(s)
	}
	return st
}

// Sync arms the slide being entered or shown and resets the one that was left.
// Exiting keeps the old slide active so its values hold during the fade.
func (st *Stage) Sync(s State, now time.Time) {
	if s.Phase == PhaseExiting {
		return
	}
	if s.Index == st.active {
		return
	}
	if st.active >= 0 && st.active < len(st.slides) {
		st.slides[st.active].Deactivate()
	}
	st.active = s.Index
	if st.active >= 0 && st.active < len(st.slides) {
		st.slides[st.active].Activate(now)
	}
}

// Slide returns the activation of slide i, or nil.
func (st *Stage) Slide(i int) *Activation {
	if i < 0 || i >= len(st.slides) {
		return nil
	}
	return st.slides[i]
}
