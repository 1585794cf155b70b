package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/stepbench/internal/experiment"
)

// Viewer browses one report: a plot per scheme with its summary line.
type Viewer struct {
	rep           *experiment.Report
	schemes       []string
	cursor        int
	logScale      bool
	phase         bool
	theme         int
	styles        Styles
	width, height int
}

func NewViewer(rep *experiment.Report, theme string) Viewer {
	idx := 0
	for i, t := range Themes {
		if t.Name == theme {
			idx = i
		}
	}
	return Viewer{
		rep:      rep,
		schemes:  rep.Schemes(),
		logScale: true,
		theme:    idx,
		styles:   NewStyles(Themes[idx]),
		width:    80,
		height:   24,
	}
}

func (m Viewer) Scheme() string {
	if len(m.schemes) == 0 {
		return ""
	}
	return m.schemes[m.cursor]
}

func (m Viewer) LogScale() bool { return m.logScale }
func (m Viewer) Phase() bool    { return m.phase }
func (m Viewer) Theme() Theme   { return m.styles.Theme() }

func (m Viewer) Init() tea.Cmd { return nil }

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	n := len(m.schemes)
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "right":
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case "shift+tab", "left":
		if n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case "l":
		m.logScale = !m.logScale
	case "p":
		m.phase = !m.phase
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = NewStyles(Themes[m.theme])
	}
	return m, nil
}

func (m Viewer) View() string {
	st := m.styles
	var s strings.Builder

	tabs := make([]string, len(m.schemes))
	for i, name := range m.schemes {
		if i == m.cursor {
			tabs[i] = st.Active.Render("[" + name + "]")
		} else {
			tabs[i] = st.Subtle.Render(" " + name + " ")
		}
	}
	s.WriteString(st.Header.Render("STEPBENCH") + "\n")
	s.WriteString(strings.Join(tabs, " ") + "\n\n")

	name := m.Scheme()
	plotW, plotH := max(m.width-16, 20), max(m.height-14, 5)
	var body string
	var err error
	if m.phase {
		body, err = PhasePortrait(m.rep, name, max(m.width-4, 10), max(m.height-12, 4))
	} else {
		body, err = PlotErrors(m.rep, name, m.logScale, plotW, plotH)
	}
	if err != nil {
		body = st.Bad.Render(err.Error())
	}
	s.WriteString(body + "\n\n")

	sum := m.rep.Summaries[name]
	s.WriteString(st.Label.Render("max ") + st.Value.Render(sci(sum.Max)) + "  ")
	s.WriteString(st.Label.Render("final ") + st.Value.Render(sci(sum.Final)) + "  ")
	s.WriteString(st.Label.Render("rms ") + st.Value.Render(sci(sum.RMS)) + "  ")
	s.WriteString(st.Label.Render("drift ") + st.Value.Render(sci(m.rep.Result.Metrics[name]["energy_drift"])))
	if step, ok := m.rep.Result.Diverged[name]; ok {
		s.WriteString("  " + st.Bad.Render(fmt.Sprintf("diverged at step %d", step)))
	}
	s.WriteString("\n")

	scale := "linear"
	if m.logScale {
		scale = "log10"
	}
	s.WriteString(st.Hint.Render(fmt.Sprintf("TAB:Scheme  L:Scale(%s)  P:Phase  T:Theme(%s)  Q:Quit", scale, st.Theme().Name)))
	return lipgloss.NewStyle().Padding(0, 1).Render(s.String())
}

// Run opens the viewer on the alternate screen and blocks until it quits.
func Run(rep *experiment.Report, theme string) error {
	_, err := tea.NewProgram(NewViewer(rep, theme), tea.WithAltScreen()).Run()
	return err
}
