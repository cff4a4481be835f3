package deck

import (
	"sync"
	"testing"
)

// manualEffects holds completion callbacks until the test releases them.
type manualEffects struct {
	mu      sync.Mutex
	pending []func()
	exits   []int
	enters  []int
}

func (m *manualEffects) Exit(slide int, done func()) {
	m.mu.Lock()
	m.exits = append(m.exits, slide)
	m.pending = append(m.pending, done)
	m.mu.Unlock()
}

func (m *manualEffects) Enter(slide int, done func()) {
	m.mu.Lock()
	m.enters = append(m.enters, slide)
	m.pending = append(m.pending, done)
	m.mu.Unlock()
}

// release completes the oldest pending effect.
func (m *manualEffects) release(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		t.Fatal("no pending effect to release")
	}
	done := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	done()
}

func TestNavigatorBounds(t *testing.T) {
	n := NewNavigator(5, 0)
	if n.Prev() {
		t.Fatal("Prev at first slide should be rejected")
	}
	if got := n.Index(); got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
	if !n.GoTo(4) {
		t.Fatal("GoTo(4) should be accepted")
	}
	if got := n.Index(); got != 4 {
		t.Fatalf("index = %d, want 4", got)
	}
	if n.Next() {
		t.Fatal("Next at last slide should be rejected")
	}
	if got := n.Index(); got != 4 {
		t.Fatalf("index = %d, want 4", got)
	}
}

func TestNavigatorRejectsOutOfRange(t *testing.T) {
	n := NewNavigator(3, 1)
	for _, j := range []int{-1, 3, 99, 1} {
		if n.GoTo(j) {
			t.Errorf("GoTo(%d) accepted", j)
		}
	}
	if got := n.Index(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
}

func TestNavigatorClampsInitial(t *testing.T) {
	tests := []struct{ total, initial, want int }{
		{5, -3, 0},
		{5, 2, 2},
		{5, 12, 4},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := NewNavigator(tt.total, tt.initial).Index(); got != tt.want {
			t.Errorf("NewNavigator(%d, %d).Index() = %d, want %d", tt.total, tt.initial, got, tt.want)
		}
	}
}

func TestNavigatorDropsRequestsWhileAnimating(t *testing.T) {
	fx := &manualEffects{}
	n := NewNavigator(5, 0, WithEffects(fx))

	if !n.Next() {
		t.Fatal("first Next should be accepted")
	}
	st := n.State()
	if st.Phase != PhaseExiting || !st.Animating() || st.Index != 0 || st.To != 1 {
		t.Fatalf("state after Next = %+v", st)
	}

	for name, fn := range map[string]func() bool{
		"Next": n.Next, "Prev": n.Prev, "First": n.First, "Last": n.Last,
		"GoTo": func() bool { return n.GoTo(3) },
	} {
		if fn() {
			t.Errorf("%s accepted during exit", name)
		}
	}

	fx.release(t)
	st = n.State()
	if st.Phase != PhaseEntering || st.Index != 1 {
		t.Fatalf("state after exit = %+v", st)
	}
	if n.GoTo(4) {
		t.Fatal("GoTo accepted during enter")
	}

	fx.release(t)
	st = n.State()
	if st.Phase != PhaseIdle || st.Index != 1 {
		t.Fatalf("state after enter = %+v", st)
	}
	if !n.GoTo(4) {
		t.Fatal("GoTo should be accepted once idle")
	}
	if len(fx.exits) != 2 || fx.exits[0] != 0 || fx.exits[1] != 1 {
		t.Fatalf("exits = %v, want [0 1]", fx.exits)
	}
	if len(fx.enters) != 1 || fx.enters[0] != 1 {
		t.Fatalf("enters = %v, want [1]", fx.enters)
	}
}

func TestNavigatorObserverSeesEachPhase(t *testing.T) {
	var phases []Phase
	n := NewNavigator(3, 0, WithObserver(func(s State) {
		phases = append(phases, s.Phase)
	}))
	n.Next()
	want := []Phase{PhaseExiting, PhaseEntering, PhaseIdle}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
}

func TestNavigatorObserverMayReenter(t *testing.T) {
	var n *Navigator
	var seen []int
	n = NewNavigator(3, 0, WithObserver(func(s State) {
		seen = append(seen, n.State().Index)
	}))
	if !n.Next() {
		t.Fatal("Next rejected")
	}
	if len(seen) != 3 {
		t.Fatalf("observer calls = %d, want 3", len(seen))
	}
}

func TestNavigatorClose(t *testing.T) {
	fx := &manualEffects{}
	n := NewNavigator(3, 0, WithEffects(fx))
	n.Next()
	n.Close()
	fx.release(t)
	st := n.State()
	if st.Index != 0 || st.Phase != PhaseExiting {
		t.Fatalf("completion after Close changed state: %+v", st)
	}
	if n.Next() {
		t.Fatal("Next accepted after Close")
	}
}

func TestNavigatorDo(t *testing.T) {
	n := NewNavigator(4, 1)
	steps := []struct {
		action Action
		ok     bool
		want   int
	}{
		{ActionNext, true, 2},
		{ActionLast, true, 3},
		{ActionLast, false, 3},
		{ActionFirst, true, 0},
		{ActionPrev, false, 0},
		{ActionNone, false, 0},
	}
	for i, s := range steps {
		if ok := n.Do(s.action); ok != s.ok {
			t.Fatalf("step %d: Do(%v) = %v, want %v", i, s.action, ok, s.ok)
		}
		if got := n.Index(); got != s.want {
			t.Fatalf("step %d: index = %d, want %d", i, got, s.want)
		}
	}
}

func TestNavigatorConcurrentInputs(t *testing.T) {
	fx := &manualEffects{}
	n := NewNavigator(10, 0, WithEffects(fx))
	var wg sync.WaitGroup
	accepted := make(chan bool, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accepted <- n.Next()
		}()
	}
	wg.Wait()
	close(accepted)
	count := 0
	for ok := range accepted {
		if ok {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("accepted %d concurrent requests, want 1", count)
	}
}
