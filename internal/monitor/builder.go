// Package monitor orchestrates one sampling cycle: enumerate sockets,
// sample per-process I/O counters, derive rates, resolve endpoints and
// emit a sorted, filtered row set.
package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/grigio/network-monitor/internal/config"
	"github.com/grigio/network-monitor/internal/docker"
	"github.com/grigio/network-monitor/internal/model"
	"github.com/grigio/network-monitor/internal/rate"
	"github.com/grigio/network-monitor/internal/resolve"
	"github.com/grigio/network-monitor/internal/services"
)

// StatusNoData marks a snapshot emitted after a source failure. Stale
// rows are never retained: rates computed against a connection list
// believed stale would mislead more than an empty table.
const StatusNoData = "no data"

// ConnectionSource enumerates sockets with owner identity.
type ConnectionSource interface {
	ListConnections(ctx context.Context) ([]model.ConnectionRecord, error)
}

// IOReader reads per-process counters and command lines.
type IOReader interface {
	ReadCounters(pid int32) (readBytes, writeBytes uint64)
	Cmdline(pid int32) string
}

// Builder runs monitoring cycles. Only the rate tracker's retained map
// and the resolution cache survive cycle boundaries; everything else is
// rebuilt from scratch each tick. Not safe for concurrent use: the
// render loop is the sole driver.
type Builder struct {
	source     ConnectionSource
	io         IOReader
	tracker    *rate.Tracker
	cache      *resolve.Cache
	containers docker.Resolver

	sortColumn Column
	ascending  bool
}

// NewBuilder wires a Builder. containers may be nil to skip container
// attribution entirely.
func NewBuilder(src ConnectionSource, io IOReader, cache *resolve.Cache, containers docker.Resolver) *Builder {
	return &Builder{
		source:     src,
		io:         io,
		tracker:    rate.NewTracker(),
		cache:      cache,
		containers: containers,
		sortColumn: ColProcess,
		ascending:  true,
	}
}

// Build runs one cycle. A source failure yields an empty snapshot with
// StatusNoData and the wrapped error for logging; every other fault is
// absorbed per component contract.
func (b *Builder) Build(ctx context.Context) (*model.Snapshot, error) {
	records, err := b.source.ListConnections(ctx)
	if err != nil {
		return &model.Snapshot{Timestamp: time.Now(), Status: StatusNoData}, err
	}

	deltas := b.sampleAndComputeRates(records)
	bindings := b.resolveBindings(ctx)

	rows := make([]model.DisplayRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		if d, ok := deltas[rec.PID]; ok {
			rec.RxRate = d.Rx
			rec.TxRate = d.Tx
		}
		rows = append(rows, b.buildRow(rec, bindings))
	}

	rows = SortAndFilter(rows, b.sortColumn, b.ascending)

	active := 0
	for _, row := range rows {
		if row.RxBytes > 0 || row.TxBytes > 0 {
			active++
		}
	}

	return &model.Snapshot{
		Rows:      rows,
		Total:     len(records),
		Active:    active,
		Timestamp: time.Now(),
	}, nil
}

// sampleAndComputeRates reads counters once per distinct owning PID and
// feeds the tracker. Ownerless records contribute nothing; their rates
// stay zero.
func (b *Builder) sampleAndComputeRates(records []model.ConnectionRecord) map[int32]rate.Delta {
	now := time.Now()
	samples := make(map[int32]model.IOCounterSample)
	for _, rec := range records {
		if !rec.HasOwner() {
			continue
		}
		if _, seen := samples[rec.PID]; seen {
			continue
		}
		readBytes, writeBytes := b.io.ReadCounters(rec.PID)
		samples[rec.PID] = model.IOCounterSample{
			PID:        rec.PID,
			ReadBytes:  readBytes,
			WriteBytes: writeBytes,
			SampledAt:  now,
		}
	}
	return b.tracker.Compute(samples)
}

// resolveBindings fetches container port bindings when attribution is
// enabled. Failures degrade to no annotations.
func (b *Builder) resolveBindings(ctx context.Context) map[int]docker.ContainerBinding {
	if b.containers == nil || !config.CurrentSettings.DockerContainers {
		return nil
	}
	bindings, err := b.containers.Resolve(ctx)
	if err != nil {
		return nil
	}
	return bindings
}

func (b *Builder) buildRow(rec *model.ConnectionRecord, bindings map[int]docker.ContainerBinding) model.DisplayRow {
	row := model.DisplayRow{
		Process:     model.FormatProcess(rec.ProcessName, rec.PID),
		Protocol:    rec.Protocol,
		Source:      b.formatEndpoint(rec.LocalAddr, rec.Protocol),
		Destination: b.formatEndpoint(rec.RemoteAddr, rec.Protocol),
		State:       rec.State,
		TX:          model.FormatRate(rec.TxRate),
		RX:          model.FormatRate(rec.RxRate),
		Path:        b.rowPath(rec, bindings),
		TxBytes:     rec.TxRate,
		RxBytes:     rec.RxRate,
	}
	return row
}

// rowPath fills the Path column: container annotation for sockets the
// Docker machinery fronts, otherwise the owner's command line.
func (b *Builder) rowPath(rec *model.ConnectionRecord, bindings map[int]docker.ContainerBinding) string {
	if bindings != nil && (!rec.HasOwner() || docker.IsProxyProcess(rec.ProcessName)) {
		if binding, ok := bindings[model.ExtractPort(rec.LocalAddr)]; ok {
			return docker.Annotation(binding)
		}
	}
	if !rec.HasOwner() {
		return model.UnknownProcess
	}
	return b.io.Cmdline(rec.PID)
}

// formatEndpoint resolves an endpoint for display and substitutes a
// well-known service name for the port when enabled.
func (b *Builder) formatEndpoint(endpoint, protocol string) string {
	resolved := b.cache.Resolve(endpoint)
	if !config.CurrentSettings.ServiceNames {
		return resolved
	}
	switch resolved {
	case resolve.DisplayAny, resolve.DisplayLocalhost, resolve.DisplayMDNS:
		return resolved
	}

	port := model.ExtractPort(endpoint)
	if port == 0 {
		return resolved
	}
	proto := strings.TrimSuffix(strings.ToLower(protocol), "6")
	name := services.Lookup(port, proto)
	if name == "" {
		return resolved
	}
	idx := strings.LastIndex(resolved, ":")
	if idx < 0 {
		return resolved
	}
	return resolved[:idx] + ":" + name
}

// SetSortColumn selects the sort column. Re-selecting the active column
// flips the direction; a new column resets to ascending.
func (b *Builder) SetSortColumn(col Column) {
	if b.sortColumn == col {
		b.ascending = !b.ascending
		return
	}
	b.sortColumn = col
	b.ascending = true
}

// ToggleSortDirection flips the current direction.
func (b *Builder) ToggleSortDirection() {
	b.ascending = !b.ascending
}

// SortState returns the current column and direction.
func (b *Builder) SortState() (Column, bool) {
	return b.sortColumn, b.ascending
}

// SetResolutionEnabled toggles hostname resolution. The rate baseline is
// discarded alongside so the next cycle starts clean, matching a cold
// start.
func (b *Builder) SetResolutionEnabled(enabled bool) {
	b.cache.SetEnabled(enabled)
	b.tracker.Reset()
}

// ResolutionEnabled reports the cache toggle.
func (b *Builder) ResolutionEnabled() bool {
	return b.cache.Enabled()
}
