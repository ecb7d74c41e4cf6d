package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grigio/network-monitor/internal/model"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "firefox", 10, "firefox"},
		{"exact length", "firefox", 7, "firefox"},
		{"truncated with ellipsis", "very-long-process-name", 10, "very-lo..."},
		{"tiny max", "firefox", 3, "fir"},
		{"multibyte kept whole", "web (nginx:latest) 8080→80", 22, "web (nginx:latest) ..."},
		{"multibyte tiny max", "→→→→", 2, "→→"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCalculateColumnWidths_FlexDistribution(t *testing.T) {
	columns := connectionColumns()
	widths := calculateColumnWidths(columns, 200)

	if len(widths) != len(columns) {
		t.Fatalf("got %d widths, want %d", len(widths), len(columns))
	}
	for i, col := range columns {
		if widths[i] < col.minWidth {
			t.Errorf("column %q width = %d, below minimum %d", col.label, widths[i], col.minWidth)
		}
		if col.flex == 0 && widths[i] != col.minWidth {
			t.Errorf("fixed column %q width = %d, want %d", col.label, widths[i], col.minWidth)
		}
	}
}

func TestRenderRows_EmptyStates(t *testing.T) {
	m := createTestModel()

	if got := m.renderRows(); !strings.Contains(got, "Loading") {
		t.Errorf("renderRows with nil snapshot = %q, want loading text", got)
	}

	m.snapshot = &model.Snapshot{Status: "no data", Timestamp: time.Now()}
	if got := m.renderRows(); !strings.Contains(got, "no data") {
		t.Errorf("renderRows with failed snapshot = %q, want status text", got)
	}

	m.snapshot = &model.Snapshot{Timestamp: time.Now()}
	if got := m.renderRows(); !strings.Contains(got, "No connections") {
		t.Errorf("renderRows with empty snapshot = %q, want empty text", got)
	}
}

func TestView_ContainsHeaderAndFooter(t *testing.T) {
	m := createTestModel()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	updated, _ = updated.(Model).Update(TickMsg(time.Now()))
	newModel := updated.(Model)

	view := newModel.View()
	if !strings.Contains(view, "NETWORK MONITOR") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "2 connections") {
		t.Error("view should contain the connection count")
	}
	if !strings.Contains(view, "Destination") {
		t.Error("view should contain the table header")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should contain the footer keybindings")
	}
}

func TestView_NotReady(t *testing.T) {
	m := createTestModel()
	if got := m.View(); !strings.Contains(got, "Initializing") {
		t.Errorf("View before first WindowSizeMsg = %q, want initializing text", got)
	}
}

func TestFormatRow_Alignment(t *testing.T) {
	row := model.DisplayRow{
		Process:     "firefox(100)",
		Protocol:    "tcp",
		Source:      "192.168.1.5:41234",
		Destination: "edge.example:https",
		State:       "ESTAB",
		TX:          "1.0KB/s",
		RX:          "12.5KB/s",
		Path:        "/usr/bin/firefox",
	}
	widths := calculateColumnWidths(connectionColumns(), 200)

	got := formatRow(row, widths)
	for _, field := range []string{"firefox(100)", "tcp", "edge.example:https", "ESTAB", "1.0KB/s", "12.5KB/s", "/usr/bin/firefox"} {
		if !strings.Contains(got, field) {
			t.Errorf("formatRow output missing %q: %q", field, got)
		}
	}
}
