package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grigio/network-monitor/internal/model"
	"github.com/grigio/network-monitor/internal/monitor"
	"github.com/grigio/network-monitor/internal/resolve"
)

// Refresh interval bounds.
const (
	MinRefreshInterval = 1 * time.Second
	MaxRefreshInterval = 10 * time.Second
	RefreshStep        = 1 * time.Second
)

// Model is the Bubble Tea model for the network monitor. It is the sole
// owner of the resolution cache: sampling cycles run synchronously
// inside Update, and background lookup completions arrive as messages,
// so cache reads and writes never race.
type Model struct {
	builder *monitor.Builder
	cache   *resolve.Cache

	snapshot *model.Snapshot

	// Sort mode: column selection before applying.
	sortMode       bool
	selectedColumn monitor.Column

	// Last cycle error, shown in the header until a cycle succeeds.
	lastError error

	refreshInterval time.Duration
	updateAvailable string
	quitting        bool

	// Dimensions
	width  int
	height int

	// Viewport for scrollable rows
	viewport viewport.Model
	ready    bool
}

// NewModel creates a Model around a wired builder and its cache.
func NewModel(builder *monitor.Builder, cache *resolve.Cache, refresh time.Duration) Model {
	if refresh < MinRefreshInterval {
		refresh = MinRefreshInterval
	}
	if refresh > MaxRefreshInterval {
		refresh = MaxRefreshInterval
	}
	col, _ := builder.SortState()
	return Model{
		builder:         builder,
		cache:           cache,
		selectedColumn:  col,
		refreshInterval: refresh,
	}
}

var _ tea.Model = Model{}
