package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants for fixed header/footer with scrollable content.
const (
	headerHeight      = 3 // double-line box header (top border + content + bottom border)
	tableHeaderHeight = 1 // frozen column headers
	footerHeight      = 2 // status line + keybindings
)

// renderHeader renders the industrial-style header with live indicator and stats.
func (m Model) renderHeader() string {
	borderStyle := BorderStyle()
	titleStyle := HeaderStyle()
	liveStyle := LiveIndicatorStyle()
	statsStyle := StatsStyle()
	warnStyle := WarnStyle()

	innerWidth := m.width - 2

	topLeft := "╔"
	topRight := "╗"
	bottomLeft := "╚"
	bottomRight := "╝"
	horizontal := "═"
	vertical := "║"

	// Top border with centered title
	title := " NETWORK MONITOR "
	titleLen := len(title)
	remainingWidth := innerWidth - titleLen
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	leftPad := remainingWidth / 2
	rightPad := remainingWidth - leftPad

	topBorder := borderStyle.Render(topLeft)
	topBorder += borderStyle.Render(strings.Repeat(horizontal, leftPad))
	topBorder += titleStyle.Render(title)
	topBorder += borderStyle.Render(strings.Repeat(horizontal, rightPad))
	topBorder += borderStyle.Render(topRight)

	liveText := liveStyle.Render("◉ LIVE")

	total, active := 0, 0
	if m.snapshot != nil {
		total = m.snapshot.Total
		active = m.snapshot.Active
	}
	statsText := statsStyle.Render(fmt.Sprintf("  %d connections, %d active", total, active))

	dnsState := "off"
	if m.builder.ResolutionEnabled() {
		dnsState = "on"
	}
	dnsText := statsStyle.Render(fmt.Sprintf("   dns: %s", dnsState))
	refreshText := statsStyle.Render(fmt.Sprintf("   %.0fs", m.refreshInterval.Seconds()))

	rightContent := ""
	if m.lastError != nil {
		rightContent = warnStyle.Render(fmt.Sprintf("  ⚠ %s", truncateString(m.lastError.Error(), 40)))
	} else if m.updateAvailable != "" {
		rightContent = warnStyle.Render(fmt.Sprintf("  ▲ %s available", m.updateAvailable))
	}

	content := liveText + statsText + dnsText + refreshText + rightContent

	contentWidth := lipgloss.Width(content)
	padding := innerWidth - contentWidth - 2 // -2 for vertical bars
	if padding < 0 {
		padding = 0
	}

	contentLine := borderStyle.Render(vertical)
	contentLine += " " + content + strings.Repeat(" ", padding) + " "
	contentLine += borderStyle.Render(vertical)

	bottomBorder := borderStyle.Render(bottomLeft)
	bottomBorder += borderStyle.Render(strings.Repeat(horizontal, innerWidth))
	bottomBorder += borderStyle.Render(bottomRight)

	return topBorder + "\n" + contentLine + "\n" + bottomBorder
}

// renderRows renders the data rows for the viewport. The column headers
// are frozen outside the viewport so they stay visible when scrolling.
func (m Model) renderRows() string {
	if m.snapshot == nil {
		return StatsStyle().Render("Loading...")
	}
	if m.snapshot.Status != "" && len(m.snapshot.Rows) == 0 {
		return WarnStyle().Render(m.snapshot.Status)
	}
	if len(m.snapshot.Rows) == 0 {
		return StatsStyle().Render("No connections")
	}

	columns := connectionColumns()
	widths := calculateColumnWidths(columns, m.width)

	lines := make([]string, 0, len(m.snapshot.Rows))
	for _, row := range m.snapshot.Rows {
		lines = append(lines, renderDataRow(row, widths))
	}
	return strings.Join(lines, "\n")
}

// renderTableHeaderLine renders the frozen column header row.
func (m Model) renderTableHeaderLine() string {
	columns := connectionColumns()
	widths := calculateColumnWidths(columns, m.width)
	sortCol, sortAsc := m.builder.SortState()
	return renderTableHeader(columns, widths, m.selectedColumn, sortCol, sortAsc, m.sortMode)
}

// renderFooter renders the two-row footer with status and keybindings.
func (m Model) renderFooter() string {
	var b strings.Builder
	statsStyle := StatsStyle()

	if m.sortMode {
		b.WriteString(statsStyle.Width(m.width).Render(
			fmt.Sprintf("SORT: %s", m.selectedColumn.String())))
	} else {
		sortCol, sortAsc := m.builder.SortState()
		direction := "descending"
		if sortAsc {
			direction = "ascending"
		}
		b.WriteString(statsStyle.Width(m.width).Render(
			fmt.Sprintf("sorted by %s, %s", sortCol.String(), direction)))
	}
	b.WriteString("\n")

	b.WriteString(FooterDescStyle().Width(m.width).Render(m.renderKeybindingsText()))
	return b.String()
}

// renderKeybindingsText returns keybindings in minimal style with soft separators.
func (m Model) renderKeybindingsText() string {
	keyStyle := FooterKeyStyle()
	descStyle := FooterDescStyle()

	btn := func(key, label string) string {
		return keyStyle.Render(key) + " " + descStyle.Render(label)
	}

	sep := descStyle.Render("  ·  ")

	var parts []string
	if m.sortMode {
		parts = []string{
			btn("←→", "column"),
			btn("↵", "apply"),
			btn("esc", "cancel"),
		}
	} else {
		parts = []string{
			btn("s", "sort"),
			btn("d", "dns"),
			btn("+/-", "refresh"),
			btn("q", "quit"),
		}
	}

	return strings.Join(parts, sep)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return StatsStyle().Render("Initializing...")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTableHeaderLine())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}
