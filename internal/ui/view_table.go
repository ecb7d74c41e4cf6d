package ui

import (
	"fmt"
	"strings"

	"github.com/grigio/network-monitor/internal/model"
	"github.com/grigio/network-monitor/internal/monitor"
)

// columnDef defines a table column with sizing properties.
type columnDef struct {
	label      string
	id         monitor.Column // column identifier for selection/sorting
	minWidth   int            // minimum width
	flex       int            // flex weight for extra space distribution (0 = fixed)
	rightAlign bool           // true for right-aligned columns (rates)
}

// connectionColumns returns the column definitions for the connection table.
func connectionColumns() []columnDef {
	return []columnDef{
		{label: "Process(ID)", id: monitor.ColProcess, minWidth: 18, flex: 2},
		{label: "Protocol", id: monitor.ColProtocol, minWidth: 9, flex: 0},
		{label: "Source", id: monitor.ColSource, minWidth: 20, flex: 2},
		{label: "Destination", id: monitor.ColDestination, minWidth: 24, flex: 3},
		{label: "State", id: monitor.ColState, minWidth: 11, flex: 1},
		{label: "TX", id: monitor.ColTX, minWidth: 10, flex: 0, rightAlign: true},
		{label: "RX", id: monitor.ColRX, minWidth: 10, flex: 0, rightAlign: true},
		{label: "Path", id: monitor.ColPath, minWidth: 16, flex: 3},
	}
}

// calculateColumnWidths distributes available width among columns.
// Fixed columns (flex=0) get their minWidth, remaining space goes to flex columns.
func calculateColumnWidths(columns []columnDef, availableWidth int) []int {
	widths := make([]int, len(columns))

	// Account for spaces between columns and the row prefix
	separators := len(columns) - 1
	rowPrefix := 2
	availableWidth -= separators + rowPrefix

	totalMinWidth := 0
	totalFlex := 0
	for i, col := range columns {
		widths[i] = col.minWidth
		totalMinWidth += col.minWidth
		totalFlex += col.flex
	}

	extraSpace := availableWidth - totalMinWidth
	if extraSpace > 0 && totalFlex > 0 {
		for i, col := range columns {
			if col.flex > 0 {
				extra := (extraSpace * col.flex) / totalFlex
				widths[i] += extra
			}
		}
	}

	return widths
}

// renderTableHeader renders the column headers with sort indicators.
func renderTableHeader(columns []columnDef, widths []int, selectedCol, sortCol monitor.Column, sortAsc, sortMode bool) string {
	var b strings.Builder

	// Align with data rows (which carry a "  " prefix)
	b.WriteString("  ")

	headerStyle := TableHeaderStyle()
	selectedStyle := TableHeaderSelectedStyle()
	sortStyle := SortIndicatorStyle()

	for i, col := range columns {
		if i > 0 {
			b.WriteString(" ")
		}

		isSelected := sortMode && selectedCol == col.id
		isSorted := sortCol == col.id

		header := col.label

		var sortIndicator string
		if isSorted {
			if sortAsc {
				sortIndicator = "△"
			} else {
				sortIndicator = "▽"
			}
		}

		padWidth := widths[i] - len(header)
		if isSorted {
			padWidth -= 1
		}
		if padWidth < 0 {
			padWidth = 0
		}
		var paddedHeader string
		if col.rightAlign {
			paddedHeader = strings.Repeat(" ", padWidth) + header
		} else {
			paddedHeader = header + strings.Repeat(" ", padWidth)
		}

		if isSelected {
			b.WriteString(selectedStyle.Render(paddedHeader))
		} else {
			b.WriteString(headerStyle.Render(paddedHeader))
		}

		if isSorted {
			b.WriteString(sortStyle.Render(sortIndicator))
		}
	}

	return b.String()
}

// formatRow lays out one display row according to the computed widths.
func formatRow(row model.DisplayRow, widths []int) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %*s %*s %-*s",
		widths[0], truncateString(row.Process, widths[0]),
		widths[1], row.Protocol,
		widths[2], truncateString(row.Source, widths[2]),
		widths[3], truncateString(row.Destination, widths[3]),
		widths[4], truncateString(row.State, widths[4]),
		widths[5], row.TX,
		widths[6], row.RX,
		widths[7], truncateString(row.Path, widths[7]),
	)
}

// renderDataRow renders one row colored by its transfer activity:
// green for download, red for upload, yellow when both sides are moving.
func renderDataRow(row model.DisplayRow, widths []int) string {
	content := "  " + formatRow(row, widths)

	switch {
	case row.RxBytes > 0 && row.TxBytes > 0:
		return BothConnStyle().Render(content)
	case row.RxBytes > 0:
		return RxConnStyle().Render(content)
	case row.TxBytes > 0:
		return TxConnStyle().Render(content)
	default:
		return ConnStyle().Render(content)
	}
}
