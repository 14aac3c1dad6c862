package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/rootcmp/internal/compare"
	"github.com/interpretive-systems/rootcmp/internal/prefs"
)

// Config identifies the two files and tree under watch.
type Config struct {
	RefPath  string
	CmpPath  string
	TreeName string
}

type model struct {
	cfg   Config
	theme Theme

	analysis *compare.Analysis
	visible  []int // indices into analysis.Results after the onlyDiff filter
	selected int   // index into visible
	onlyDiff bool

	comparing   bool
	status      string
	lastRefresh time.Time
	refMod      time.Time
	cmpMod      time.Time

	width     int
	height    int
	leftWidth int
	rightVP   viewport.Model
	showHelp  bool
}

// messages
type tickMsg struct{}

type statMsg struct {
	ref, cmp time.Time
	err      error
}

type analysisMsg struct {
	a   *compare.Analysis
	err error
}

// Run instantiates and runs the Bubble Tea program.
func Run(cfg Config) error {
	m := model{cfg: cfg, theme: loadTheme()}
	if p := prefs.Load(); p.LeftWidthSet {
		m.leftWidth = p.LeftWidth
	}
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(runAnalysis(m.cfg), statFiles(m.cfg), tickOnce())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "h", "esc":
				m.showHelp = false
				return m, m.recalcViewport()
			default:
				return m, nil
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = true
			return m, m.recalcViewport()
		case "d":
			m.onlyDiff = !m.onlyDiff
			m.rebuildVisible("")
			m.rightVP.GotoTop()
			return m, m.recalcViewport()
		case "r":
			if !m.comparing {
				m.comparing = true
				m.status = ""
				return m, runAnalysis(m.cfg)
			}
			return m, nil
		case "<", "H":
			if m.leftWidth == 0 {
				m.leftWidth = m.width / 3
			}
			m.leftWidth -= 2
			if m.leftWidth < 20 {
				m.leftWidth = 20
			}
			m.saveLeftWidth()
			return m, m.recalcViewport()
		case ">", "L":
			if m.leftWidth == 0 {
				m.leftWidth = m.width / 3
			}
			m.leftWidth += 2
			maxLeft := m.width - 20
			if maxLeft < 20 {
				maxLeft = 20
			}
			if m.leftWidth > maxLeft {
				m.leftWidth = maxLeft
			}
			m.saveLeftWidth()
			return m, m.recalcViewport()
		case "j", "down":
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.rightVP.GotoTop()
				return m, m.recalcViewport()
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.rightVP.GotoTop()
				return m, m.recalcViewport()
			}
		case "g":
			if len(m.visible) > 0 {
				m.selected = 0
				m.rightVP.GotoTop()
				return m, m.recalcViewport()
			}
		case "G":
			if len(m.visible) > 0 {
				m.selected = len(m.visible) - 1
				m.rightVP.GotoTop()
				return m, m.recalcViewport()
			}
		// Right pane scrolling
		case "pgdown":
			m.rightVP.PageDown()
			return m, nil
		case "pgup":
			m.rightVP.PageUp()
			return m, nil
		case "J", "ctrl+d":
			m.rightVP.HalfPageDown()
			return m, nil
		case "K", "ctrl+u":
			m.rightVP.HalfPageUp()
			return m, nil
		case "ctrl+e":
			m.rightVP.LineDown(1)
			return m, nil
		case "ctrl+y":
			m.rightVP.LineUp(1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.leftWidth == 0 {
			m.leftWidth = m.width / 3
			if m.leftWidth < 24 {
				m.leftWidth = 24
			}
		}
		return m, m.recalcViewport()
	case tickMsg:
		return m, tea.Batch(statFiles(m.cfg), tickOnce())
	case statMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("stat error: %v", msg.err)
			return m, nil
		}
		changed := (!m.refMod.IsZero() && !msg.ref.Equal(m.refMod)) ||
			(!m.cmpMod.IsZero() && !msg.cmp.Equal(m.cmpMod))
		m.refMod = msg.ref
		m.cmpMod = msg.cmp
		if changed && !m.comparing {
			m.comparing = true
			m.status = ""
			return m, runAnalysis(m.cfg)
		}
		return m, nil
	case analysisMsg:
		m.comparing = false
		if msg.err != nil {
			m.status = fmt.Sprintf("compare error: %v", msg.err)
			return m, m.recalcViewport()
		}
		// Preserve selection by variable name if possible
		var selName string
		if r, ok := m.current(); ok {
			selName = r.Name
		}
		m.analysis = msg.a
		m.status = ""
		m.lastRefresh = time.Now()
		m.rebuildVisible(selName)
		return m, m.recalcViewport()
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftW := m.leftWidth
	if leftW < 20 {
		leftW = 20
	}
	rightW := m.width - leftW - 1 // vertical divider column
	if rightW < 1 {
		rightW = 1
	}
	sep := m.theme.DividerText("│")

	top := "Variables | " + m.topRightTitle()
	hr := m.theme.DividerText(strings.Repeat("─", m.width))

	var overlay []string
	if m.showHelp {
		overlay = m.helpOverlayLines(m.width)
	}
	overlayH := len(overlay)

	contentHeight := m.height - 4 - overlayH // top + top rule + bottom rule + bottom bar
	if contentHeight < 1 {
		contentHeight = 1
	}

	leftLines := m.leftBodyLines(contentHeight)
	m.rightVP.Width = rightW
	m.rightVP.Height = contentHeight
	rightView := m.rightVP.View()
	rightLines := strings.Split(rightView, "\n")

	var b strings.Builder
	b.WriteString(top)
	b.WriteByte('\n')
	b.WriteString(hr)
	b.WriteByte('\n')
	for i := 0; i < contentHeight; i++ {
		var l, r string
		if i < len(leftLines) {
			l = padToWidth(leftLines[i], leftW)
		} else {
			l = strings.Repeat(" ", leftW)
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(l)
		b.WriteString(sep)
		b.WriteString(padToWidth(r, rightW))
		if i < contentHeight-1 {
			b.WriteByte('\n')
		}
	}
	if overlayH > 0 {
		b.WriteByte('\n')
		for i, line := range overlay {
			b.WriteString(padToWidth(line, m.width))
			if i < overlayH-1 {
				b.WriteByte('\n')
			}
		}
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", m.width))
	b.WriteByte('\n')
	b.WriteString(m.bottomBar())
	return b.String()
}

func (m *model) rebuildVisible(keepName string) {
	m.visible = m.visible[:0]
	if m.analysis == nil {
		m.selected = 0
		return
	}
	for i, r := range m.analysis.Results {
		if m.onlyDiff && r.Verdict != compare.Differs {
			continue
		}
		m.visible = append(m.visible, i)
	}
	m.selected = 0
	if keepName != "" {
		for vi, ri := range m.visible {
			if m.analysis.Results[ri].Name == keepName {
				m.selected = vi
				break
			}
		}
	}
}

// saveLeftWidth persists the pane width, routing failures to the status
// bar alongside stat and compare errors.
func (m *model) saveLeftWidth() {
	if err := prefs.SaveLeftWidth(m.leftWidth); err != nil {
		m.status = fmt.Sprintf("prefs error: %v", err)
	}
}

func (m model) current() (compare.Result, bool) {
	if m.analysis == nil || m.selected < 0 || m.selected >= len(m.visible) {
		return compare.Result{}, false
	}
	return m.analysis.Results[m.visible[m.selected]], true
}

func (m model) topRightTitle() string {
	r, ok := m.current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s)", r.Name, verdictLabel(r.Verdict))
}

func (m model) leftBodyLines(max int) []string {
	lines := make([]string, 0, max)
	if m.analysis == nil {
		lines = append(lines, "Comparing…")
		return lines
	}
	if len(m.visible) == 0 {
		if m.onlyDiff {
			lines = append(lines, "No differing variables")
		} else {
			lines = append(lines, "No variables found")
		}
		return lines
	}
	for vi, ri := range m.visible {
		r := m.analysis.Results[ri]
		marker := "  "
		if vi == m.selected {
			marker = "> "
		}
		tag := m.verdictTag(r.Verdict)
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, tag, r.Name))
		if len(lines) >= max {
			break
		}
	}
	return lines
}

func (m model) verdictTag(v compare.Verdict) string {
	switch v {
	case compare.Differs:
		return m.theme.DiffText("D")
	case compare.Skipped:
		return m.theme.SkipText("s")
	default:
		return m.theme.SameText("=")
	}
}

func verdictLabel(v compare.Verdict) string {
	switch v {
	case compare.Differs:
		return "DIFF"
	case compare.Skipped:
		return "skipped"
	default:
		return "same"
	}
}

// rightBodyLinesAll builds the full (unclipped) right pane content for
// the selected variable; the viewport handles scrolling.
func (m model) rightBodyLinesAll(width int) []string {
	lines := make([]string, 0, 128)
	r, ok := m.current()
	if !ok {
		if m.comparing {
			lines = append(lines, "Comparing…")
		}
		return lines
	}

	title := lipgloss.NewStyle().Bold(true).Render(r.Name)
	lines = append(lines, title+"  "+m.verdictText(r.Verdict))
	for _, n := range r.Notes {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render(n))
	}
	lines = append(lines, "")

	if r.Verdict == compare.Skipped {
		return lines
	}

	lines = append(lines, fmt.Sprintf("%-8s %16s %16s", "", "ref", "cmp"))
	lines = append(lines, fmt.Sprintf("%-8s %16d %16d", "entries", r.Ref.Entries, r.Cmp.Entries))
	lines = append(lines, fmt.Sprintf("%-8s %16.6g %16.6g", "mean", r.Ref.Mean, r.Cmp.Mean))
	lines = append(lines, fmt.Sprintf("%-8s %16.6g %16.6g", "stddev", r.Ref.StdDev, r.Cmp.StdDev))
	lines = append(lines, "")

	hp, ok := m.analysis.Hists[r.Name]
	if !ok {
		return lines
	}
	lines = append(lines, m.histLines(hp, width)...)
	return lines
}

func (m model) verdictText(v compare.Verdict) string {
	switch v {
	case compare.Differs:
		return m.theme.DiffText("DIFF")
	case compare.Skipped:
		return m.theme.SkipText("skipped")
	default:
		return m.theme.SameText("same")
	}
}

// histLines renders both histograms as horizontal bars, two lines per
// bin, scaled to the larger bin content.
func (m model) histLines(hp compare.HistPair, width int) []string {
	rbins := hp.Ref.Binning.Bins
	cbins := hp.Cmp.Binning.Bins

	maxw := 0.0
	for i := range rbins {
		if w := rbins[i].SumW(); w > maxw {
			maxw = w
		}
		if w := cbins[i].SumW(); w > maxw {
			maxw = w
		}
	}
	if maxw == 0 {
		return nil
	}

	barW := width - 28
	if barW < 8 {
		barW = 8
	}
	lines := make([]string, 0, 2*len(rbins))
	for i := range rbins {
		rw := rbins[i].SumW()
		cw := cbins[i].SumW()
		edge := fmt.Sprintf("%11.4g ", rbins[i].XMid())
		lines = append(lines,
			edge+"ref "+m.theme.RefBar(bar(rw, maxw, barW))+fmt.Sprintf(" %g", rw))
		lines = append(lines,
			strings.Repeat(" ", len(edge))+"cmp "+m.theme.CmpBar(bar(cw, maxw, barW))+fmt.Sprintf(" %g", cw))
	}
	return lines
}

func bar(w, maxw float64, width int) string {
	n := int(w / maxw * float64(width))
	if n == 0 && w > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func (m model) bottomBar() string {
	leftText := fmt.Sprintf("h: help  |  ref: %s  cmp: %s", m.cfg.RefPath, m.cfg.CmpPath)
	if m.comparing {
		leftText += "  |  comparing…"
	}
	if m.status != "" {
		leftText += "  |  " + m.status
	}
	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	right := lipgloss.NewStyle().Faint(true).Render("refreshed: " + m.lastRefresh.Format("15:04:05"))
	w := m.width
	rightW := lipgloss.Width(right)
	if rightW >= w {
		return ansi.Truncate(right, w, "…")
	}
	avail := w - rightW - 1 // 1 space gap
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}
	return leftRendered + " " + right
}

// helpOverlayLines returns the bottom overlay lines (without trailing newline).
func (m model) helpOverlayLines(width int) []string {
	if !m.showHelp {
		return nil
	}
	title := lipgloss.NewStyle().Bold(true).Render("Help — press 'h' or Esc to close")
	keys := []string{
		"j/k or arrows  Move selection",
		"J/K, PgDn/PgUp  Scroll detail",
		"</> or H/L      Adjust left pane width",
		"d              Show differing variables only",
		"r              Re-compare now",
		"g / G          Top / Bottom",
		"q              Quit",
	}
	lines := make([]string, 0, 2+len(keys))
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, title)
	lines = append(lines, keys...)
	return lines
}

// recalcViewport recalculates right viewport size and content based on
// current state.
func (m *model) recalcViewport() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	leftW := m.leftWidth
	if leftW < 20 {
		leftW = 20
	}
	rightW := m.width - leftW - 1
	if rightW < 1 {
		rightW = 1
	}
	overlayH := 0
	if m.showHelp {
		overlayH = len(m.helpOverlayLines(m.width))
	}
	contentHeight := m.height - 4 - overlayH
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.rightVP.Width = rightW
	m.rightVP.Height = contentHeight
	m.rightVP.SetContent(strings.Join(m.rightBodyLinesAll(rightW), "\n"))
	return nil
}

func runAnalysis(cfg Config) tea.Cmd {
	return func() tea.Msg {
		a, err := compare.Analyze(cfg.RefPath, cfg.CmpPath, compare.Options{TreeName: cfg.TreeName})
		return analysisMsg{a: a, err: err}
	}
}

func statFiles(cfg Config) tea.Cmd {
	return func() tea.Msg {
		ref, err := os.Stat(cfg.RefPath)
		if err != nil {
			return statMsg{err: err}
		}
		cmp, err := os.Stat(cfg.CmpPath)
		if err != nil {
			return statMsg{err: err}
		}
		return statMsg{ref: ref.ModTime(), cmp: cmp.ModTime()}
	}
}

func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
