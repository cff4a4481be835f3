package deck

import (
	"math"
	"testing"
	"time"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.875}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCountUpRearms(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &CountUp{Target: 200, Duration: 2 * time.Second}

	if got := c.Value(start); got != 0 {
		t.Fatalf("inactive value = %v, want 0", got)
	}
	c.Activate(start)
	if got := c.Value(start.Add(time.Second)); math.Abs(got-175) > 1e-9 {
		t.Fatalf("value at half time = %v, want 175", got)
	}
	if got := c.Value(start.Add(5 * time.Second)); got != 200 {
		t.Fatalf("final value = %v, want 200", got)
	}

	c.Deactivate()
	if got := c.Value(start.Add(5 * time.Second)); got != 0 {
		t.Fatalf("value after Deactivate = %v, want 0", got)
	}

	again := start.Add(time.Minute)
	c.Activate(again)
	if got := c.Value(again); got != 0 {
		t.Fatalf("value at re-activation = %v, want 0", got)
	}
	if got := c.Value(again.Add(2 * time.Second)); got != 200 {
		t.Fatalf("value after second run = %v, want 200", got)
	}
}

func TestRevealStagger(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &Reveal{Widths: []float64{40, 80}, Duration: time.Second, Stagger: 500 * time.Millisecond}
	r.Activate(start)

	at := start.Add(500 * time.Millisecond)
	if got := r.Width(0, at); math.Abs(got-40*0.875) > 1e-9 {
		t.Fatalf("bar 0 = %v, want %v", got, 40*0.875)
	}
	if got := r.Width(1, at); got != 0 {
		t.Fatalf("bar 1 should not have started, got %v", got)
	}
	if got := r.Width(1, start.Add(2*time.Second)); got != 80 {
		t.Fatalf("bar 1 final = %v, want 80", got)
	}
	if got := r.Width(5, at); got != 0 {
		t.Fatalf("out-of-range bar = %v", got)
	}
	r.Deactivate()
	if got := r.Width(1, start.Add(2*time.Second)); got != 0 {
		t.Fatalf("bar after Deactivate = %v", got)
	}
}

func TestStageSync(t *testing.T) {
	slides := []Slide{
		{Layout: LayoutCover},
		{Layout: LayoutMetrics, Items: []Item{{Value: 10}}},
		{Layout: LayoutBars, Items: []Item{{Value: 50}}},
	}
	st := NewStage(slides)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	metrics := st.Slide(1).Counters[0]

	st.Sync(State{Index: 1, Phase: PhaseEntering}, now)
	if !metrics.Active() {
		t.Fatal("metrics counter should be active once entering")
	}
	st.Sync(State{Index: 1, From: 1, To: 2, Phase: PhaseExiting}, now)
	if !metrics.Active() {
		t.Fatal("counter should hold while its slide exits")
	}
	st.Sync(State{Index: 2, Phase: PhaseEntering}, now)
	if metrics.Active() {
		t.Fatal("counter should reset after leaving")
	}
	if st.Slide(2).Bars == nil || st.Slide(0).Bars != nil {
		t.Fatal("bars built for the wrong layout")
	}
	if st.Slide(9) != nil {
		t.Fatal("Slide(9) should be nil")
	}
}
