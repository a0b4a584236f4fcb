package viz

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortstep/internal/metrics"
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/session"
	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
)

const (
	maxNotices      = 3
	historyCapacity = 200
	sparkWidth      = 40
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputGenerate
)

type notice struct {
	id   int
	text string
}

type noticeExpiredMsg struct{ id int }

// commandDoneMsg reports a finished control command. Failures have already
// been surfaced as notices by the session.
type commandDoneMsg struct{ err error }

type Options struct {
	Algorithm    string
	List         sortstep.Array
	Theme        string
	GenerateSize int
	NotifyTTL    time.Duration
}

// Model is the Bubble Tea front end. It never calls into the scheduler from
// Update or View: control operations run as commands, and everything shown
// comes from FrameMsg, NoticeMsg and RunningMsg.
type Model struct {
	sess    *session.Session
	narr    sortstep.Narrator
	algos   []string
	titles  []string
	algo    int
	theme   Theme
	st      styles
	initial sortstep.Array
	genSize int
	ttl     time.Duration

	frame   stepper.Frame
	running bool
	notices []notice
	nextID  int
	history []float64

	mode  inputMode
	input string

	width, height int
}

func NewModel(sess *session.Session, opts Options) Model {
	reg := sess.Registry()
	algos := reg.Names()
	titles := make([]string, len(algos))
	algo := 0
	for i, name := range algos {
		titles[i] = reg.Title(name)
		if name == opts.Algorithm {
			algo = i
		}
	}
	if opts.NotifyTTL <= 0 {
		opts.NotifyTTL = 3 * time.Second
	}
	if opts.GenerateSize <= 0 {
		opts.GenerateSize = 10
	}
	theme := GetTheme(opts.Theme)

	return Model{
		sess:    sess,
		narr:    sess.Narrator(),
		algos:   algos,
		titles:  titles,
		algo:    algo,
		theme:   theme,
		st:      newStyles(theme),
		initial: opts.List.Clone(),
		genSize: opts.GenerateSize,
		ttl:     opts.NotifyTTL,
		frame:   stepper.Frame{Array: sortstep.Array{}},
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.initial) == 0 {
		return nil
	}
	list := m.initial
	return m.do(func() error { return m.sess.SetList(list) })
}

func (m Model) do(fn func() error) tea.Cmd {
	return func() tea.Msg { return commandDoneMsg{err: fn()} }
}

func (m Model) Algorithm() string { return m.algos[m.algo] }
func (m Model) Theme() Theme      { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case FrameMsg:
		m.applyFrame(stepper.Frame(msg))
	case RunningMsg:
		m.running = bool(msg)
		if m.running {
			m.mode, m.input = inputNone, ""
		}
	case NoticeMsg:
		m.nextID++
		id := m.nextID
		m.notices = append(m.notices, notice{id: id, text: string(msg)})
		if len(m.notices) > maxNotices {
			m.notices = m.notices[len(m.notices)-maxNotices:]
		}
		return m, tea.Tick(m.ttl, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
	case noticeExpiredMsg:
		kept := make([]notice, 0, len(m.notices))
		for _, n := range m.notices {
			if n.id != msg.id {
				kept = append(kept, n)
			}
		}
		m.notices = kept
	case commandDoneMsg:
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyFrame(f stepper.Frame) {
	if f.Running && f.Step == nil {
		m.history = m.history[:0]
	}
	if f.Step != nil {
		m.history = append(m.history, float64(metrics.CountInversions(f.Array)))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
	m.frame = f
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.inputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	case "tab", "right", "l":
		if !m.running {
			m.algo = (m.algo + 1) % len(m.algos)
		}
	case "shift+tab", "left", "h":
		if !m.running {
			m.algo = (m.algo + len(m.algos) - 1) % len(m.algos)
		}
	case "a":
		if !m.running {
			m.mode, m.input = inputAdd, ""
		}
	case "g":
		if !m.running {
			m.mode, m.input = inputGenerate, ""
		}
	case "enter", " ":
		if !m.running {
			name := m.algos[m.algo]
			return m, m.do(func() error { return m.sess.StartSort(name) })
		}
	case "s":
		if m.running {
			return m, m.do(func() error { m.sess.Stop(); return nil })
		}
	case "k":
		if m.running {
			return m, m.do(func() error { m.sess.Skip(); return nil })
		}
	case "r":
		if !m.running {
			return m, m.do(func() error { m.sess.Reset(); return nil })
		}
	}
	return m, nil
}

func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode, m.input = inputNone, ""
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "enter":
		text, mode := m.input, m.mode
		m.mode, m.input = inputNone, ""
		if mode == inputGenerate {
			if text == "" {
				text = strconv.Itoa(m.genSize)
			}
			return m, m.do(func() error { return m.sess.GenerateText(text) })
		}
		return m, m.do(func() error { return m.sess.AddElementText(text) })
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' && len(m.input) < 3 {
			m.input += s
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	st := m.st

	b.WriteString("\n  " + st.title.Render("SORTSTEP") + "  " + st.subtle.Render("step-by-step sorting") + "\n\n  ")
	for i, title := range m.titles {
		if i == m.algo {
			b.WriteString(st.tabActive.Render(title))
		} else {
			b.WriteString(st.tab.Render(title))
		}
	}
	b.WriteString("\n  " + st.subtle.Render(Separator(min(m.width-4, 100))) + "\n\n")

	if bars := renderBars(m.frame.Array, m.frame.Highlight, st, barHeight); bars != "" {
		for _, line := range strings.Split(bars, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + st.subtle.Render(m.frame.Array.String()) + "\n")
	status := st.idle.Render("○ idle")
	if m.running {
		status = st.running.Render("● running")
	}
	b.WriteString("  " + st.counter.Render(m.narr.Sprintf(narrate.StepCounter, m.frame.Seq)) + "   " + status + "\n")

	switch {
	case m.frame.Fault != nil:
		b.WriteString("  " + st.fault.Render(m.frame.Narration) + "\n")
	case m.frame.Narration != "":
		b.WriteString("  " + st.narration.Render(m.frame.Narration) + "\n")
	default:
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("  " + st.subtle.Render("disorder ") + st.bar.Render(SparklineChart(m.history, sparkWidth)) + "\n")
	}

	switch m.mode {
	case inputAdd:
		b.WriteString("\n  " + st.key.Render("value (1-100): ") + m.input + "_\n")
	case inputGenerate:
		b.WriteString("\n  " + st.key.Render("size (1-25): ") + m.input + "_ " + st.subtle.Render("default "+strconv.Itoa(m.genSize)) + "\n")
	}

	for _, n := range m.notices {
		b.WriteString("\n" + indent(st.notice.Render(n.text), "  "))
	}
	b.WriteString("\n\n  " + m.hints() + "\n")
	return b.String()
}

func (m Model) hints() string {
	type hint struct {
		key, label string
		on         bool
	}
	idle := !m.running
	hints := []hint{
		{"enter", "start", idle},
		{"s", "stop", m.running},
		{"k", "skip", m.running},
		{"a", "add", idle},
		{"g", "generate", idle},
		{"r", "reset", idle},
		{"tab", "algorithm", idle},
		{"t", "theme", true},
		{"q", "quit", true},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		if h.on {
			parts[i] = m.st.key.Render(h.key) + " " + m.st.subtle.Render(h.label)
		} else {
			parts[i] = m.st.keyOff.Render(h.key + " " + h.label)
		}
	}
	return strings.Join(parts, "  ")
}

func indent(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
