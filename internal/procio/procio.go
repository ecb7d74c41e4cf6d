// Package procio reads per-process I/O counters and command lines from
// the proc filesystem.
package procio

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grigio/network-monitor/internal/model"
)

// Reader reads cumulative I/O counters for processes. The proc root is
// overridable so tests can point it at a fixture tree.
type Reader struct {
	root string
}

// NewReader returns a Reader backed by /proc.
func NewReader() *Reader {
	return &Reader{root: "/proc"}
}

// NewReaderAt returns a Reader rooted at an alternative proc path.
func NewReaderAt(root string) *Reader {
	return &Reader{root: root}
}

// ReadCounters returns the cumulative read/write byte counters for a
// process from its io file (rchar/wchar lines, which include network
// traffic). A vanished process during a sampling race is expected, so
// every failure maps to (0, 0) rather than an error.
func (r *Reader) ReadCounters(pid int32) (readBytes, writeBytes uint64) {
	path := filepath.Join(r.root, strconv.Itoa(int(pid)), "io")
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "rchar:"):
			readBytes = parseCounter(line)
		case strings.HasPrefix(line, "wchar:"):
			writeBytes = parseCounter(line)
		}
	}
	return readBytes, writeBytes
}

// Cmdline returns the full command line of a process with argument
// separators replaced by spaces. An empty cmdline file denotes a kernel
// thread, displayed as "[<pid>]".
func (r *Reader) Cmdline(pid int32) string {
	path := filepath.Join(r.root, strconv.Itoa(int(pid)), "cmdline")
	data, err := os.ReadFile(path)
	if err != nil {
		return model.UnknownProcess
	}
	cmdline := strings.TrimRight(string(data), "\x00")
	if cmdline == "" {
		return "[" + strconv.Itoa(int(pid)) + "]"
	}
	return strings.ReplaceAll(cmdline, "\x00", " ")
}

// parseCounter extracts the numeric value from a "key: <N>" line.
// Malformed lines yield zero.
func parseCounter(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
