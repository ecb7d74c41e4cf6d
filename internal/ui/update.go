package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grigio/network-monitor/internal/config"
	"github.com/grigio/network-monitor/internal/monitor"
	"github.com/grigio/network-monitor/internal/release"
	"github.com/grigio/network-monitor/internal/resolve"
)

// AppVersion is stamped by the build; "dev" suppresses nothing, the
// release check treats it as always outdated.
var AppVersion = "dev"

// cycleTimeout bounds one sampling cycle (the ss invocation dominates).
const cycleTimeout = 5 * time.Second

// Init starts the cycle timer, the resolution drain and the release check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return TickMsg(time.Now()) },
		m.awaitResolution(),
		checkRelease(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - headerHeight - tableHeaderHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.refreshViewport()
		return m, nil

	case TickMsg:
		m.runCycle()
		return m, m.tickCmd()

	case ResolvedMsg:
		// Drain the whole completion queue before re-running, so a
		// burst of lookups costs one cycle instead of one each.
		m.cache.Apply(resolve.Completion(msg))
	drained:
		for {
			select {
			case done := <-m.cache.Completions():
				m.cache.Apply(done)
			default:
				break drained
			}
		}
		m.runCycle()
		return m, m.awaitResolution()

	case ReleaseMsg:
		m.updateAvailable = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.sortMode {
		switch {
		case matchKey(key, KeyLeft, KeyLeftAlt):
			m.selectedColumn = adjacentColumn(m.selectedColumn, -1)
		case matchKey(key, KeyRight, KeyRightAlt):
			m.selectedColumn = adjacentColumn(m.selectedColumn, +1)
		case matchKey(key, KeyApply):
			m.builder.SetSortColumn(m.selectedColumn)
			m.sortMode = false
			m.runCycle()
		case matchKey(key, KeyCancel):
			m.sortMode = false
			col, _ := m.builder.SortState()
			m.selectedColumn = col
		}
		return m, nil
	}

	switch {
	case matchKey(key, KeyQuit, KeyQuitAlt):
		m.quitting = true
		return m, tea.Quit

	case matchKey(key, KeySortMode):
		m.sortMode = true
		col, _ := m.builder.SortState()
		m.selectedColumn = col
		return m, nil

	case matchKey(key, KeyResolve):
		enabled := !m.builder.ResolutionEnabled()
		m.builder.SetResolutionEnabled(enabled)
		config.CurrentSettings.ResolveHosts = enabled
		_ = config.SaveSettings(config.CurrentSettings)
		m.runCycle()
		return m, nil

	case matchKey(key, KeyRefreshUp):
		if m.refreshInterval > MinRefreshInterval {
			m.refreshInterval -= RefreshStep
		}
		return m, nil

	case matchKey(key, KeyRefreshDown):
		if m.refreshInterval < MaxRefreshInterval {
			m.refreshInterval += RefreshStep
		}
		return m, nil
	}

	// Everything else scrolls the viewport.
	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// runCycle performs one sampling cycle synchronously. The builder never
// blocks on hostname resolution, so this stays well under a frame even
// when DNS is slow.
func (m *Model) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	snapshot, err := m.builder.Build(ctx)
	m.snapshot = snapshot
	m.lastError = err
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if m.ready {
		m.viewport.SetContent(m.renderRows())
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// awaitResolution blocks on the cache's completion queue and surfaces
// the next finished lookup as a message. Re-armed after every delivery.
func (m Model) awaitResolution() tea.Cmd {
	return func() tea.Msg {
		return ResolvedMsg(<-m.cache.Completions())
	}
}

func checkRelease() tea.Cmd {
	return func() tea.Msg {
		latest, err := release.CheckLatest("grigio", "network-monitor", AppVersion)
		if err != nil {
			return ReleaseMsg("")
		}
		return ReleaseMsg(latest)
	}
}

// adjacentColumn steps through the display columns, clamping at the ends.
func adjacentColumn(col monitor.Column, step int) monitor.Column {
	columns := monitor.Columns()
	for i, c := range columns {
		if c != col {
			continue
		}
		next := i + step
		if next < 0 || next >= len(columns) {
			return col
		}
		return columns[next]
	}
	return columns[0]
}
