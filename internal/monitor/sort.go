package monitor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grigio/network-monitor/internal/model"
	"github.com/grigio/network-monitor/internal/resolve"
)

// Column identifies one of the display columns.
type Column int

const (
	ColProcess Column = iota
	ColProtocol
	ColSource
	ColDestination
	ColState
	ColTX
	ColRX
	ColPath
)

// String returns the column's display label.
func (c Column) String() string {
	switch c {
	case ColProcess:
		return "Process(ID)"
	case ColProtocol:
		return "Protocol"
	case ColSource:
		return "Source"
	case ColDestination:
		return "Destination"
	case ColState:
		return "State"
	case ColTX:
		return "TX"
	case ColRX:
		return "RX"
	case ColPath:
		return "Path"
	default:
		return fmt.Sprintf("Column(%d)", c)
	}
}

// Columns returns all display columns in table order.
func Columns() []Column {
	return []Column{
		ColProcess, ColProtocol, ColSource, ColDestination,
		ColState, ColTX, ColRX, ColPath,
	}
}

// SortAndFilter drops loopback-destined rows, then stable-sorts the rest
// by the given column. Rate columns compare the underlying byte values
// so "1.0KB/s" orders after "900.0B/s"; every other column compares the
// case-folded display string. Ties keep their input order.
func SortAndFilter(rows []model.DisplayRow, col Column, ascending bool) []model.DisplayRow {
	filtered := make([]model.DisplayRow, 0, len(rows))
	for _, row := range rows {
		if row.Destination == resolve.DisplayLocalhost {
			continue
		}
		filtered = append(filtered, row)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		less := rowLess(&filtered[i], &filtered[j], col)
		if ascending {
			return less
		}
		return rowLess(&filtered[j], &filtered[i], col)
	})

	return filtered
}

func rowLess(a, b *model.DisplayRow, col Column) bool {
	switch col {
	case ColTX:
		return a.TxBytes < b.TxBytes
	case ColRX:
		return a.RxBytes < b.RxBytes
	default:
		return strings.ToLower(columnValue(a, col)) < strings.ToLower(columnValue(b, col))
	}
}

func columnValue(row *model.DisplayRow, col Column) string {
	switch col {
	case ColProcess:
		return row.Process
	case ColProtocol:
		return row.Protocol
	case ColSource:
		return row.Source
	case ColDestination:
		return row.Destination
	case ColState:
		return row.State
	case ColPath:
		return row.Path
	default:
		return row.Process
	}
}
