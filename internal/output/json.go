package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/grigio/network-monitor/internal/model"
)

// JSONRow represents one connection in JSON output.
type JSONRow struct {
	Process     string `json:"process"`
	Protocol    string `json:"protocol"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	State       string `json:"state"`
	TxRate      uint64 `json:"tx_rate_bytes"`
	RxRate      uint64 `json:"rx_rate_bytes"`
	Path        string `json:"path"`
}

// JSONSnapshot is the root JSON output structure.
type JSONSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Total     int       `json:"total_connections"`
	Active    int       `json:"active_connections"`
	Status    string    `json:"status,omitempty"`
	Rows      []JSONRow `json:"connections"`
}

// RenderJSON writes a snapshot as indented JSON.
func RenderJSON(w io.Writer, snap *model.Snapshot) error {
	out := JSONSnapshot{
		Timestamp: snap.Timestamp,
		Total:     snap.Total,
		Active:    snap.Active,
		Status:    snap.Status,
		Rows:      make([]JSONRow, 0, len(snap.Rows)),
	}

	for _, row := range snap.Rows {
		out.Rows = append(out.Rows, JSONRow{
			Process:     row.Process,
			Protocol:    row.Protocol,
			Source:      row.Source,
			Destination: row.Destination,
			State:       row.State,
			TxRate:      row.TxBytes,
			RxRate:      row.RxBytes,
			Path:        row.Path,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
