package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/orbit"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var dashboardFeed feedFlags

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive dashboard (alias: dash)",
	Long: `Launch a full-screen dashboard over the asteroids of a feed.

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to top
    G           Jump to bottom
    PgUp/PgDn   Scroll the preview

  Actions:
    h           Toggle hazardous-only filter
    m           Mark for merge; a second m merges with the marked asteroid
    c           Copy the JPL URL to the clipboard
    r           Toggle the source record in the preview
    a           Animate the flyby

  Views:
    /           Search mode
    Esc         Clear search / Exit mode
    ?           Show help

  General:
    q           Quit dashboard
    Ctrl+C      Force quit`,
	RunE: runDashboard,
}

func init() {
	dashboardFeed.register(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	resp, err := catalogService.Execute(ctx, services.CatalogRequest{
		Feed:    dashboardFeed.request(),
		SortBy:  appConfig.DefaultSort,
		Reverse: appConfig.ReverseSort,
	})
	if err != nil {
		return fmt.Errorf("failed to load asteroids: %w", err)
	}

	m := newDashboardModel(ctx, resp.Entries)
	m.source = resp.Source
	if len(resp.Skipped) > 0 {
		m.setStatus(fmt.Sprintf("%d malformed records skipped", len(resp.Skipped)), ui.StyleWarning)
	}
	if resp.Warning != "" {
		m.setStatus(resp.Warning, ui.StyleWarning)
	}
	if appConfig.HazardousOnly {
		m.hazardOnly = true
		m.applySearch()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
	modeAnimate
)

// Preview state
type previewState struct {
	content  string
	id       string
	showRaw  bool
	viewport viewport.Model
}

// Animation state
type animationState struct {
	id         int // generation; ticks of earlier animations are dropped
	trajectory domain.Trajectory
	clock      orbit.Clock
	interval   time.Duration
}

// Dashboard model
type dashboardModel struct {
	ctx           context.Context
	entries       []services.CatalogEntry // All asteroids
	filtered      []services.CatalogEntry // Filtered/searched asteroids
	cursor        int                     // Selected item index
	offset        int                     // Scroll offset of the list
	mode          viewMode
	hazardOnly    bool
	marked        *services.CatalogEntry // First operand of a pending merge
	source        string
	searchInput   textinput.Model
	help          help.Model
	keys          keyMap
	width         int
	height        int
	ready         bool
	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time
	preview       previewState
	anim          animationState
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Hazard  key.Binding
	Mark    key.Binding
	Copy    key.Binding
	Raw     key.Binding
	Animate key.Binding
	Pause   key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Hazard, k.Mark, k.Animate, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Hazard, k.Mark, k.Copy, k.Raw, k.Animate},
		{k.Search, k.Help, k.Escape, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Hazard: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hazardous only"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark/merge"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy JPL URL"),
	),
	Raw: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "source record"),
	),
	Animate: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a", "animate flyby"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func newDashboardModel(ctx context.Context, entries []services.CatalogEntry) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search asteroids..."
	ti.CharLimit = 100
	ti.Width = 50

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle().Foreground(ui.ColorDefault)

	return dashboardModel{
		ctx:         ctx,
		entries:     entries,
		filtered:    entries,
		mode:        modeList,
		searchInput: ti,
		help:        help.New(),
		keys:        keys,
		preview: previewState{
			viewport: vp,
		},
	}
}

func (m dashboardModel) Init() tea.Cmd {
	if len(m.filtered) > 0 {
		return m.loadPreview(m.filtered[0])
	}
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		m.preview.viewport.Width = max(20, msg.Width-int(float64(msg.Width)*0.4)-6)
		m.preview.viewport.Height = max(10, msg.Height-16)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeAnimate:
			return m.updateAnimate(msg)
		case modeList:
			return m.updateList(msg)
		}

	case statusMsg:
		m.setStatus(msg.message, msg.style)
		return m, nil

	case previewLoadedMsg:
		m.preview.content = msg.content
		m.preview.id = msg.id
		m.preview.viewport.SetContent(msg.content)
		m.preview.viewport.GotoTop()
		return m, nil

	case animTickMsg:
		if m.mode != modeAnimate || msg.id != m.anim.id {
			return m, nil
		}
		m.anim.clock = m.anim.clock.Tick()
		return m, m.tick()
	}

	if m.mode == modeList || m.mode == modeSearch {
		var cmd tea.Cmd
		m.preview.viewport, cmd = m.preview.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		if len(m.filtered) > 0 {
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(m.filtered)-1)
		m.adjustViewport()
		if len(m.filtered) > 0 {
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case msg.Type == tea.KeyPgUp:
		m.preview.viewport.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.preview.viewport.ViewDown()

	case key.Matches(msg, m.keys.Hazard):
		m.hazardOnly = !m.hazardOnly
		m.applySearch()
		if len(m.filtered) > 0 {
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Mark):
		if len(m.filtered) > 0 {
			return m.markOrMerge(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Copy):
		if len(m.filtered) > 0 {
			return m, copyJPLURL(m.filtered[m.cursor].Report)
		}

	case key.Matches(msg, m.keys.Raw):
		m.preview.showRaw = !m.preview.showRaw
		if len(m.filtered) > 0 {
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Animate):
		if len(m.filtered) > 0 {
			return m.startAnimation(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.cursor = 0
		m.offset = 0
		m.applySearch()
		return m, nil

	// Enter keeps the filter and returns to the list
	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	// Only arrow keys navigate in search mode, j/k are typed
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			return m, m.loadPreview(m.filtered[m.cursor])
		}

	case msg.Type == tea.KeyPgUp:
		m.preview.viewport.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.preview.viewport.ViewDown()

	default:
		oldQuery := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() != oldQuery {
			m.cursor = 0
			m.offset = 0
			m.applySearch()
			if len(m.filtered) > 0 {
				return m, tea.Batch(cmd, m.loadPreview(m.filtered[m.cursor]))
			}
		}
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) updateAnimate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = modeList

	case key.Matches(msg, m.keys.Pause):
		m.anim.clock = m.anim.clock.TogglePause()

	case msg.Type == tea.KeyLeft:
		m.anim.clock.Paused = true
		m.anim.clock = m.anim.clock.Rewind()

	case msg.Type == tea.KeyRight:
		m.anim.clock.Paused = true
		m.anim.clock = m.anim.clock.Advance()
	}
	return m, nil
}

// markOrMerge marks the first operand, or merges the marked asteroid with e
func (m dashboardModel) markOrMerge(e services.CatalogEntry) (tea.Model, tea.Cmd) {
	if m.marked == nil {
		marked := e
		m.marked = &marked
		m.setStatus("Marked "+e.Report.Name+", press m on a second asteroid to merge", ui.StyleInfo)
		return m, nil
	}

	if sameAsteroid(*m.marked, e) {
		m.marked = nil
		m.setStatus("Merge cancelled", ui.StyleMuted)
		return m, nil
	}

	resp, err := mergeService.Merge(m.marked.Asteroid, e.Asteroid)
	m.marked = nil
	if err != nil {
		m.setStatus("Merge failed: "+err.Error(), ui.StyleError)
		return m, nil
	}

	content := reportDetails(resp.Report)
	m.preview.content = content
	m.preview.id = ""
	m.preview.viewport.SetContent(content)
	m.preview.viewport.GotoTop()

	style := ui.StyleSuccess
	if resp.Merged.IsHazardous {
		style = ui.StyleHazard
	}
	m.setStatus(fmt.Sprintf("Merged %s: %s", resp.Report.Name, physics.TNTEquivalent(resp.Report.ImpactEnergyMegatons)), style)
	return m, nil
}

// startAnimation switches to the flyby view and starts the tick loop
func (m dashboardModel) startAnimation(e services.CatalogEntry) (tea.Model, tea.Cmd) {
	t := trajectoryService.ForAsteroid(e.Asteroid, services.SampleRequest{})
	startDeg := -90.0
	fps := 30
	if appConfig != nil {
		startDeg = appConfig.StartAnomalyDeg
		fps = max(1, appConfig.FPS)
	}

	m.anim = animationState{
		id:         m.anim.id + 1,
		trajectory: t,
		clock:      trajectoryService.Clock(t, startDeg, services.SampleRequest{}),
		interval:   time.Second / time.Duration(fps),
	}
	m.mode = modeAnimate
	return m, m.tick()
}

func (m dashboardModel) tick() tea.Cmd {
	id := m.anim.id
	return tea.Tick(m.anim.interval, func(time.Time) tea.Msg {
		return animTickMsg{id: id}
	})
}

func (m *dashboardModel) setStatus(message string, style lipgloss.Style) {
	m.message = message
	m.messageStyle = style
	m.messageExpiry = time.Now().Add(3 * time.Second)
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeAnimate:
		return m.viewAnimate()
	default:
		return m.viewListWithPreview()
	}
}

func (m dashboardModel) viewListWithPreview() string {
	// Split screen: list on left (40%), preview on right
	listWidth := max(30, int(float64(m.width)*0.4))
	previewWidth := m.width - listWidth - 2

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")

	listLines := strings.Split(m.renderList(listWidth), "\n")
	var previewLines []string
	if previewWidth >= 30 {
		previewLines = strings.Split(m.renderPreview(previewWidth), "\n")
	}

	maxLines := max(len(listLines), len(previewLines))
	for i := 0; i < maxLines; i++ {
		var listLine, previewLine string
		if i < len(listLines) {
			listLine = listLines[i]
		}
		if i < len(previewLines) {
			previewLine = previewLines[i]
		}

		s.WriteString(padRight(listLine, listWidth))
		s.WriteString("  ")
		s.WriteString(previewLine)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m dashboardModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	s.WriteString(titleStyle.Render("NEO Dashboard - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	m.help.ShowAll = true
	s.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(m.help.View(m.keys)))
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render("  In the flyby view: space pauses, ←/→ step the body, esc returns"))
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to dashboard"))
	s.WriteString("\n")

	return s.String()
}

func (m dashboardModel) viewAnimate() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(0, 1)

	t := m.anim.trajectory
	s.WriteString(titleStyle.Render(ui.IconAsteroid + " " + t.Name + " flyby"))
	s.WriteString(" ")
	s.WriteString(ui.StyleMuted.Render("miss distance " + ui.FormatQuantity(t.MissDistanceKm, "km")))
	s.WriteString("\n\n")

	canvas := renderOrbitCanvas(t, m.anim.clock, max(10, m.width), max(5, m.height-5))
	s.WriteString(canvas.String())
	s.WriteString("\n\n")

	status := "[space] Pause  [←/→] Step  [esc] Back"
	if m.anim.clock.Paused {
		status = "[paused]  " + status
	}
	s.WriteString(ui.StyleMuted.Render(status))

	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	hazardous := 0
	for _, e := range m.filtered {
		if e.Report.IsHazardous {
			hazardous++
		}
	}

	title := titleStyle.Render(ui.IconAsteroid + " NEO Dashboard")
	statsText := fmt.Sprintf("%d asteroids  %d hazardous", len(m.filtered), hazardous)
	if m.hazardOnly {
		statsText += "  [hazardous only]"
	}
	if m.source != "" {
		statsText += "  (" + m.source + ")"
	}
	stats := statsStyle.Render(statsText)

	spacer := max(0, m.width-lipgloss.Width(title)-lipgloss.Width(stats))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacer),
		stats,
	)
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(max(10, m.width-4))

	prompt := ui.StyleMuted.Render("🔍 ")
	if m.mode == modeSearch {
		prompt = ui.StylePrimary.Render("🔍 ")
	}

	content := prompt + m.searchInput.View()
	if m.mode != modeSearch && m.searchInput.Value() == "" {
		content = prompt + ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m dashboardModel) renderList(width int) string {
	var s strings.Builder

	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 2).
			Width(width)

		switch {
		case m.searchInput.Value() != "":
			s.WriteString(emptyStyle.Render("No asteroids match your search."))
		case m.hazardOnly:
			s.WriteString(emptyStyle.Render("No hazardous asteroids. Press h to show all."))
		default:
			s.WriteString(emptyStyle.Render("No asteroids in this feed."))
		}
		return s.String()
	}

	end := min(len(m.filtered), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		s.WriteString(m.renderItem(m.filtered[i], i == m.cursor, width))
	}

	return s.String()
}

func (m dashboardModel) renderItem(e services.CatalogEntry, selected bool, width int) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		nameStyle = ui.StylePrimary.Bold(true)
	}

	flag := " "
	if e.Report.IsHazardous {
		flag = ui.StyleHazard.Render(ui.IconHazard)
	}
	if m.marked != nil && sameAsteroid(*m.marked, e) {
		flag = ui.StyleAccent.Render("+")
	}

	// Reserve space for cursor, flag and energy
	energy := physics.TNTEquivalent(e.Report.ImpactEnergyMegatons)
	maxName := max(10, width-lipgloss.Width(energy)-6)
	name := ui.Truncate(e.Report.Name, maxName)

	line := cursor + flag + " " + padRight(nameStyle.Render(name), maxName) + " " + ui.StyleMuted.Render(energy)
	return padRight(line, width) + "\n"
}

func (m dashboardModel) renderPreview(width int) string {
	var s strings.Builder

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(width - 2).
		Height(max(5, m.height-12))

	if m.preview.content == "" {
		text := "Loading preview..."
		if len(m.filtered) == 0 {
			text = "No asteroid selected"
		}
		return borderStyle.Render(
			lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Italic(true).
				Padding(1).
				Render(text),
		)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Width(width - 4)

	title := "Merged body"
	for _, e := range m.filtered {
		if e.Asteroid.ID == m.preview.id {
			title = e.Report.Name
			break
		}
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	s.WriteString(lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render(fmt.Sprintf("PgUp/PgDn to scroll • %d%%", int(m.preview.viewport.ScrollPercent()*100))))
	s.WriteString("\n")
	s.WriteString(m.preview.viewport.View())

	return borderStyle.Render(s.String())
}

func (m dashboardModel) renderFooter() string {
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else if m.marked != nil {
		statusLine = ui.StyleInfo.Render("Merging with " + m.marked.Report.Name)
	} else {
		statusLine = ui.StyleMuted.Render("Ready")
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	m.help.ShowAll = false
	return footerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		statusLine,
		m.help.View(m.keys),
	))
}

func padRight(s string, width int) string {
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}

func (m dashboardModel) listHeight() int {
	return max(3, m.height-10)
}

func (m *dashboardModel) adjustViewport() {
	listHeight := m.listHeight()

	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// applySearch recomputes the visible asteroids from the query and filter
func (m *dashboardModel) applySearch() {
	filtered := m.entries
	if m.hazardOnly {
		filtered = nil
		for _, e := range m.entries {
			if e.Report.IsHazardous {
				filtered = append(filtered, e)
			}
		}
	}
	if query := strings.TrimSpace(m.searchInput.Value()); query != "" {
		filtered = catalogService.Search(filtered, query)
	}
	m.filtered = filtered

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
}

// Messages

type statusMsg struct {
	message string
	style   lipgloss.Style
}

type previewLoadedMsg struct {
	id      string
	content string
}

type animTickMsg struct {
	id int
}

// sameAsteroid compares ids when both records carry one, names otherwise
func sameAsteroid(a, b services.CatalogEntry) bool {
	if a.Asteroid.ID != "" && b.Asteroid.ID != "" {
		return a.Asteroid.ID == b.Asteroid.ID
	}
	return a.Asteroid.Name == b.Asteroid.Name
}

func copyJPLURL(r domain.Report) tea.Cmd {
	return func() tea.Msg {
		if r.JPLURL == "" {
			return statusMsg{message: "No JPL URL for " + r.Name, style: ui.StyleWarning}
		}
		if err := clipboard.WriteAll(r.JPLURL); err != nil {
			return statusMsg{message: fmt.Sprintf("Clipboard unavailable: %v", err), style: ui.StyleError}
		}
		return statusMsg{message: "Copied " + r.JPLURL, style: ui.StyleSuccess}
	}
}

func (m dashboardModel) loadPreview(e services.CatalogEntry) tea.Cmd {
	showRaw := m.preview.showRaw
	return func() tea.Msg {
		content := reportDetails(e.Report)
		if showRaw && len(e.Raw) > 0 {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, e.Raw, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(e.Raw)
			}
			content += "\n" + highlightJSON(pretty.String())
		}
		return previewLoadedMsg{id: e.Asteroid.ID, content: content}
	}
}
