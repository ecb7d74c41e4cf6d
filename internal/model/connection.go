package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnknownProcess is the sentinel used when a connection's owner could not
// be determined.
const UnknownProcess = "unknown"

// ConnectionRecord is one observed socket at sample time. Records are
// built fresh on every sampling cycle; only the rate fields are attached
// after creation.
type ConnectionRecord struct {
	Protocol    string // e.g. "tcp", "udp"
	State       string // e.g. "ESTAB", "LISTEN", "UNCONN"
	LocalAddr   string // "ip:port", "[v6]:port" or wildcard forms like "*:*"
	RemoteAddr  string
	ProcessName string // UnknownProcess when no owner info was found
	PID         int32  // 0 when unknown; rates stay zero in that case

	// Derived per cycle from I/O counter deltas. Bytes per sampling
	// interval, never negative.
	RxRate uint64
	TxRate uint64
}

// HasOwner reports whether an owning process was identified.
func (c *ConnectionRecord) HasOwner() bool {
	return c.PID > 0
}

// IOCounterSample holds cumulative byte counters for one process at one
// sampling instant. The rate tracker retains exactly one per PID.
type IOCounterSample struct {
	PID        int32
	ReadBytes  uint64
	WriteBytes uint64
	SampledAt  time.Time
}

// DisplayRow is the formatted, presentation-ready view of one connection.
// Raw byte values are carried alongside so rate columns sort numerically
// rather than by their formatted strings.
type DisplayRow struct {
	Process     string // "name(pid)" or just the name when the PID is unknown
	Protocol    string
	Source      string // resolved local endpoint
	Destination string // resolved remote endpoint
	State       string
	TX          string // formatted, e.g. "1.5KB/s"
	RX          string
	Path        string // full command line, "[<pid>]" for kernel threads

	TxBytes uint64
	RxBytes uint64
}

// Snapshot is the output of one monitoring cycle.
type Snapshot struct {
	Rows      []DisplayRow
	Total     int // connections observed before filtering
	Active    int // rows with either rate above zero
	Timestamp time.Time
	Status    string // "no data" when the connection source failed
}

// SplitEndpoint splits an "address:port" string into its IP component and
// port string. Brackets around IPv6 addresses are stripped. The second
// return is false when the string has no port separator.
func SplitEndpoint(endpoint string) (ip, port string, ok bool) {
	idx := strings.LastIndex(endpoint, ":")
	if idx < 0 {
		return endpoint, "", false
	}
	ip = endpoint[:idx]
	port = endpoint[idx+1:]
	if strings.HasPrefix(ip, "[") && strings.HasSuffix(ip, "]") {
		ip = ip[1 : len(ip)-1]
	}
	return ip, port, true
}

// ExtractPort returns the numeric port of an endpoint like
// "127.0.0.1:8080", or 0 when there is none (wildcard or malformed).
func ExtractPort(endpoint string) int {
	_, portStr, ok := SplitEndpoint(endpoint)
	if !ok {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

// FormatProcess renders the Process column: "name(pid)", or the bare name
// when no PID is known.
func FormatProcess(name string, pid int32) string {
	if pid <= 0 {
		return name
	}
	return fmt.Sprintf("%s(%d)", name, pid)
}

// FormatRate renders a bytes-per-interval value in human-readable units.
func FormatRate(bytes uint64) string {
	const unit = 1024.0
	v := float64(bytes)
	for _, suffix := range []string{"B", "KB", "MB", "GB"} {
		if v < unit {
			return fmt.Sprintf("%.1f%s/s", v, suffix)
		}
		v /= unit
	}
	return fmt.Sprintf("%.1fTB/s", v)
}
