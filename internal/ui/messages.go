package ui

import (
	"time"

	"github.com/grigio/network-monitor/internal/resolve"
)

// TickMsg drives one sampling cycle.
type TickMsg time.Time

// ResolvedMsg carries one finished background hostname lookup.
type ResolvedMsg resolve.Completion

// ReleaseMsg carries a newer release tag, or empty when current.
type ReleaseMsg string
