package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eringen/showcase/deck"
)

var presentStart int

var presentCmd = &cobra.Command{
	Use:   "present [deck.yaml]",
	Short: "Present the deck in the terminal",
	Long: `present runs the slide deck full screen with the same navigation and
effects as the web deck. Without an argument SHOWCASE_DECK_PATH is used.

Keys: →/l/space next, ←/h previous, g/home first, G/end last, 1-9 jump, q quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DeckPath
		if len(args) == 1 {
			path = args[0]
		}
		d := deck.Deck{Title: cfg.Name, Subtitle: cfg.Description}
		if path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			d, err = deck.LoadDeck(f)
			f.Close()
			if err != nil {
				return err
			}
		}
		p := newPresenter(d.Sequence(), deck.ParseSlideParam(strconv.Itoa(presentStart), len(d.Sequence())))
		defer p.close()
		_, err := tea.NewProgram(p, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	presentCmd.Flags().IntVar(&presentStart, "slide", 1, "1-based slide to start on")
}

const frameInterval = 33 * time.Millisecond

type (
	stateMsg deck.State
	stepMsg  deck.Step
	frameMsg time.Time
)

// presenter is the terminal front end of a deck.Navigator. Navigator observers
// and effect hooks fire on timer goroutines; they are funnelled into the program
// through events.
type presenter struct {
	slides []deck.Slide
	nav    *deck.Navigator
	stage  *deck.Stage

	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once

	state     deck.State
	shown     int       // elements of the current slide revealed so far
	animUntil time.Time // count-ups and bars are still moving
	now       time.Time
	width     int
	height    int
}

func newPresenter(slides []deck.Slide, start int) *presenter {
	p := &presenter{
		slides: slides,
		stage:  deck.NewStage(slides),
		events: make(chan tea.Msg, 256),
		done:   make(chan struct{}),
		now:    time.Now(),
	}
	fx := deck.NewTimedEffects(func(i int) int { return elements(p.slides[i]) })
	fx.Hook = func(s deck.Step) { p.emit(stepMsg(s)) }
	p.nav = deck.NewNavigator(len(slides), start,
		deck.WithEffects(fx),
		deck.WithObserver(func(s deck.State) { p.emit(stateMsg(s)) }),
	)
	p.state = p.nav.State()
	p.shown = elements(slides[p.state.Index])
	p.arm(p.now)
	return p
}

// elements is the number of animatable parts of a slide: the title and each item.
func elements(s deck.Slide) int {
	return 1 + len(s.Items)
}

func (p *presenter) emit(m tea.Msg) {
	select {
	case p.events <- m:
	case <-p.done:
	}
}

func (p *presenter) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-p.events:
			return m
		case <-p.done:
			return nil
		}
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (p *presenter) close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.nav.Close()
	})
}

// arm syncs the stage with the current state and keeps frames coming until the
// slide's effects settle.
func (p *presenter) arm(now time.Time) {
	p.stage.Sync(p.state, now)
	s := p.slides[p.state.Index]
	settle := deck.CountDuration
	if s.Layout == deck.LayoutBars {
		settle = deck.RevealDuration + time.Duration(len(s.Items))*deck.RevealStagger
	}
	p.animUntil = now.Add(settle)
}

func (p *presenter) Init() tea.Cmd {
	return tea.Batch(p.wait(), frame())
}

func (p *presenter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			p.close()
			return p, tea.Quit
		}
		if n, err := strconv.Atoi(key); err == nil {
			p.nav.GoTo(n - 1)
		} else {
			p.nav.Do(deck.KeyAction(key))
		}
		return p, nil

	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, nil

	case stateMsg:
		wasIdle := !p.state.Animating()
		p.state = deck.State(msg)
		p.now = time.Now()
		if p.state.Phase == deck.PhaseIdle {
			p.shown = elements(p.slides[p.state.Index])
		}
		p.arm(p.now)
		if wasIdle && p.state.Animating() {
			return p, tea.Batch(p.wait(), frame())
		}
		return p, p.wait()

	case stepMsg:
		switch msg.Kind {
		case deck.StepExit:
			p.shown = 0
		case deck.StepEnter:
			p.shown = max(p.shown, msg.Element+1)
		}
		return p, p.wait()

	case frameMsg:
		p.now = time.Time(msg)
		if p.state.Animating() || p.now.Before(p.animUntil) {
			return p, frame()
		}
		return p, nil
	}
	return p, nil
}

var (
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Align(lipgloss.Right)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")).Italic(true)
)

func (p *presenter) View() string {
	idx := p.state.Index
	s := p.slides[idx]
	fg := lipgloss.Color(orDefault(s.TextColor, "#f9fafb"))
	bg := lipgloss.Color(orDefault(s.Background, "#111827"))
	base := lipgloss.NewStyle().Foreground(fg).Background(bg)
	if p.state.Phase == deck.PhaseExiting {
		base = base.Faint(true)
	}

	var b strings.Builder
	lines := p.body(s, lipgloss.NewStyle().Foreground(fg).Background(bg))
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}

	w, h := max(p.width, 40), max(p.height, 12)
	card := base.Width(w).Height(h-2).Padding(1, 4).Render(b.String())
	status := fmt.Sprintf("%d / %d", idx+1, len(p.slides))
	footer := lipgloss.JoinHorizontal(lipgloss.Top,
		helpStyle.Width(w-len(status)).Render("←/→ navigate · g/G first/last · q quit"),
		counterStyle.Render(status),
	)
	return lipgloss.JoinVertical(lipgloss.Left, card, footer)
}

// body renders element i only once it has been revealed, so entrances stagger in.
func (p *presenter) body(s deck.Slide, st lipgloss.Style) []string {
	title := st.Bold(true)
	var out []string
	reveal := func(i int, line string) {
		if i < p.shown {
			out = append(out, line)
		} else {
			out = append(out, "")
		}
	}
	if s.Tag != "" && s.Tag != "cover" {
		out = append(out, tagStyle.Render(s.Tag), "")
	}
	reveal(0, title.Render(s.Title))
	if s.Text != "" {
		out = append(out, "", st.Render(s.Text))
	}
	out = append(out, "")

	act := p.stage.Slide(p.state.Index)
	switch s.Layout {
	case deck.LayoutMetrics:
		for i, it := range s.Items {
			v := it.Value
			if act != nil && i < len(act.Counters) {
				v = act.Counters[i].Value(p.now)
			}
			reveal(i+1, fmt.Sprintf("%s  %s", title.Render(formatCount(v, it.Value)+it.Suffix), st.Render(it.Label)))
		}
	case deck.LayoutBars:
		const barWidth = 40
		top := 0.0
		for _, it := range s.Items {
			top = math.Max(top, it.Value)
		}
		for i, it := range s.Items {
			w := 0.0
			if act != nil && act.Bars != nil {
				w = act.Bars.Width(i, p.now)
			}
			cells := 0
			if top > 0 {
				cells = int(math.Round(w / top * barWidth))
			}
			reveal(i+1, fmt.Sprintf("%-18s %s %s",
				it.Label, st.Render(strings.Repeat("█", cells)+strings.Repeat(" ", barWidth-cells)), formatCount(it.Value, it.Value)+it.Suffix))
		}
	default:
		for i, it := range s.Items {
			line := "• " + it.Label
			if it.Detail != "" {
				line += "  " + it.Detail
			}
			reveal(i+1, st.Render(line))
		}
	}
	return out
}

// formatCount shows whole numbers while counting and the exact target once reached.
func formatCount(v, target float64) string {
	if v >= target {
		return strconv.FormatFloat(target, 'f', -1, 64)
	}
	return strconv.FormatFloat(math.Floor(v), 'f', 0, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
