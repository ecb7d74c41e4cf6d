// Package source enumerates active sockets with owning-process identity
// by parsing the tabular output of the ss command.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/grigio/network-monitor/internal/model"
	"github.com/grigio/network-monitor/internal/procio"
)

// ErrSourceUnavailable signals that the enumeration command failed or is
// absent. Callers recover by emitting an empty snapshot; the condition is
// never fatal.
var ErrSourceUnavailable = errors.New("connection source unavailable")

// minFields is the minimum token count for a parseable line: protocol,
// state, recv-q, send-q, local address, remote address.
const minFields = 6

// sshPort triggers the best-effort owner guess for connections whose
// owner info is missing.
const sshPort = 22

var (
	pidPattern  = regexp.MustCompile(`pid=(\d+)`)
	progPattern = regexp.MustCompile(`"([^"]+)"`)
)

// Runner executes the external enumeration command and returns its
// stdout. Injectable for tests.
type Runner func(ctx context.Context) ([]byte, error)

// processEntry is one candidate from a live process scan.
type processEntry struct {
	pid  int32
	name string
}

// Lister enumerates live processes for the SSH owner heuristic.
type Lister func(ctx context.Context) []processEntry

// Reader enumerates connections from the ss command.
type Reader struct {
	run    Runner
	list   Lister
	procio *procio.Reader
}

// NewReader returns a Reader that shells out to "ss -tulnape".
func NewReader(io *procio.Reader) *Reader {
	return &Reader{
		run: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "ss", "-tulnape").Output()
		},
		list:   listProcesses,
		procio: io,
	}
}

// ListConnections parses one ss invocation into connection records.
// On command failure it returns no records and an error wrapping
// ErrSourceUnavailable; malformed lines are skipped, never fatal.
func (r *Reader) ListConnections(ctx context.Context) ([]model.ConnectionRecord, error) {
	out, err := r.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var records []model.ConnectionRecord
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// Column header.
			first = false
			continue
		}
		if line == "" {
			continue
		}

		rec, ok := parseLine(line)
		if !ok {
			continue
		}

		if rec.PID == 0 && model.ExtractPort(rec.RemoteAddr) == sshPort {
			r.guessSSHOwner(ctx, &rec)
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseLine tokenizes one ss output line. Lines with fewer than
// minFields fields are rejected.
func parseLine(line string) (model.ConnectionRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return model.ConnectionRecord{}, false
	}

	rec := model.ConnectionRecord{
		Protocol:    fields[0],
		State:       fields[1],
		LocalAddr:   fields[4],
		RemoteAddr:  fields[5],
		ProcessName: model.UnknownProcess,
	}

	for _, field := range fields[6:] {
		if !strings.HasPrefix(field, "users:((") {
			continue
		}
		if m := pidPattern.FindStringSubmatch(field); m != nil {
			if pid, err := strconv.ParseInt(m[1], 10, 32); err == nil {
				rec.PID = int32(pid)
			}
		}
		if m := progPattern.FindStringSubmatch(field); m != nil {
			rec.ProcessName = m[1]
		}
		break
	}

	return rec, true
}

// guessSSHOwner scans the live process list once for an ssh process with
// nonzero historical read bytes and adopts it as the likely owner.
// Heuristic only: it may misattribute, and it costs at most one
// enumeration pass.
func (r *Reader) guessSSHOwner(ctx context.Context, rec *model.ConnectionRecord) {
	for _, p := range r.list(ctx) {
		if !strings.Contains(strings.ToLower(p.name), "ssh") {
			continue
		}
		readBytes, _ := r.procio.ReadCounters(p.pid)
		if readBytes > 0 {
			rec.PID = p.pid
			rec.ProcessName = "ssh"
			return
		}
	}
}

// listProcesses pulls the live process list via gopsutil. Processes
// whose name can't be read are skipped.
func listProcesses(ctx context.Context) []processEntry {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}
	entries := make([]processEntry, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		entries = append(entries, processEntry{pid: p.Pid, name: name})
	}
	return entries
}
