package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/grigio/network-monitor/internal/config"
)

// Theme-aware style getters

// HeaderStyle returns the style for the main header title.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Header.TitleFg))
}

// LiveIndicatorStyle returns the style for the live pulse indicator.
func LiveIndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Header.LiveFg))
}

// StatsStyle returns the style for header statistics text.
func StatsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Header.StatsFg))
}

// WarnStyle returns the style for warnings in the header.
func WarnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Header.WarnFg))
}

// BorderStyle returns the style for box borders.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Border.FgColor))
}

// ConnStyle returns the style for connection rows with no activity.
func ConnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.FgColor))
}

// RxConnStyle returns the style for download-only rows.
func RxConnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.RxFgColor))
}

// TxConnStyle returns the style for upload-only rows.
func TxConnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.TxFgColor))
}

// BothConnStyle returns the style for bidirectional rows.
func BothConnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.BothFgColor))
}

// TableHeaderStyle returns the style for table column headers.
func TableHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.HeaderFgColor)).
		Bold(true)
}

// TableHeaderSelectedStyle returns the style for the selected column header.
func TableHeaderSelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.SelectedColumn)).
		Bold(true).
		Underline(true)
}

// SortIndicatorStyle returns the style for sort direction indicators.
func SortIndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Table.SortIndicator))
}

// FooterKeyStyle returns the style for keyboard shortcut keys in the footer.
func FooterKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Footer.KeyFgColor))
}

// FooterDescStyle returns the style for key descriptions in the footer.
func FooterDescStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.CurrentTheme.Styles.Footer.DescFgColor))
}
