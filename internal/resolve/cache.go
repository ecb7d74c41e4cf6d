// Package resolve maps remote endpoints to display strings, driving
// bounded-concurrency reverse hostname lookups in the background.
//
// The Cache is owned by a single goroutine (the render loop): Resolve,
// Apply and SetEnabled must only be called from it. Background workers
// never touch the maps; they deliver Completions on a channel which the
// owner applies, so every cache write is a single-owner atomic step.
package resolve

import (
	"context"
	"strings"

	"github.com/grigio/network-monitor/internal/dns"
	"github.com/grigio/network-monitor/internal/model"
)

// Display strings for endpoints that resolve deterministically without
// any network I/O.
const (
	DisplayAny       = "ANY"
	DisplayLocalhost = "LOCALHOST"
	DisplayMDNS      = "MDNS"
)

// maxConcurrentLookups bounds in-flight reverse lookups. Workers acquire
// a slot before the blocking lookup call and release it on every path.
const maxConcurrentLookups = 5

// completionBuffer sizes the delivery queue. The owner drains it every
// render cycle, so it only needs to absorb short bursts.
const completionBuffer = 64

// Completion is one finished background lookup, delivered to the cache
// owner for application.
type Completion struct {
	Endpoint string // the endpoint that triggered the lookup
	IP       string // its IP component, removed from pending on apply
	Resolved string // "<hostname>:<port>", or the raw endpoint on failure
}

// LookupFunc performs one blocking reverse lookup. Injectable for tests.
type LookupFunc func(ctx context.Context, ip string) (string, error)

// Cache resolves endpoints with a stale-while-revalidate policy: a miss
// returns the raw endpoint immediately and schedules a lookup whose
// result a later cycle picks up. Entries are immutable once written and
// never expire; disabling clears everything.
type Cache struct {
	enabled bool
	entries map[string]string   // endpoint -> display string
	pending map[string]struct{} // IPs with a lookup in flight
	sem     chan struct{}
	done    chan Completion
	lookup  LookupFunc
}

// NewCache returns an enabled cache backed by reverse DNS.
func NewCache() *Cache {
	return NewCacheWithLookup(dns.Reverse)
}

// NewCacheWithLookup returns an enabled cache using the given lookup.
func NewCacheWithLookup(lookup LookupFunc) *Cache {
	return &Cache{
		enabled: true,
		entries: make(map[string]string),
		pending: make(map[string]struct{}),
		sem:     make(chan struct{}, maxConcurrentLookups),
		done:    make(chan Completion, completionBuffer),
		lookup:  lookup,
	}
}

// Resolve returns the display string for an endpoint. It never blocks on
// network I/O: special forms resolve immediately, cached entries are
// returned as-is, and anything else comes back raw while a background
// lookup is scheduled (at most one per IP).
func (c *Cache) Resolve(endpoint string) string {
	if s, ok := resolveSpecial(endpoint); ok {
		return s
	}
	if !c.enabled {
		return endpoint
	}
	if resolved, ok := c.entries[endpoint]; ok {
		return resolved
	}

	ip, _, ok := model.SplitEndpoint(endpoint)
	if !ok {
		return endpoint
	}
	if _, inFlight := c.pending[ip]; !inFlight {
		c.pending[ip] = struct{}{}
		go c.resolveInBackground(ip, endpoint)
	}
	return endpoint
}

// resolveSpecial handles the forms that never need a lookup.
func resolveSpecial(endpoint string) (string, bool) {
	switch {
	case endpoint == "0.0.0.0:*" || endpoint == "*:*" || endpoint == "[::]:*":
		return DisplayAny, true
	case hasAnyPrefix(endpoint, "127.0.0.1:", "[::1]:"):
		return DisplayLocalhost, true
	case hasAnyPrefix(endpoint, "224.0.0.251:"):
		return DisplayMDNS, true
	}
	return "", false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// resolveInBackground runs on its own goroutine. The semaphore slot is
// released on every exit path; failures negative-cache the raw endpoint
// so permanently unresolvable addresses are not retried.
func (c *Cache) resolveInBackground(ip, endpoint string) {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	resolved := endpoint
	hostname, err := c.lookup(context.Background(), ip)
	if err == nil && hostname != "" {
		if _, port, ok := model.SplitEndpoint(endpoint); ok {
			resolved = hostname + ":" + port
		}
	}

	c.done <- Completion{Endpoint: endpoint, IP: ip, Resolved: resolved}
}

// Completions exposes the delivery queue. The owner drains it and calls
// Apply for each completion, then re-renders.
func (c *Cache) Completions() <-chan Completion {
	return c.done
}

// Apply writes one completed lookup and clears its pending mark, as a
// single step on the owner goroutine. Completions that land after the
// cache was disabled are dropped: the pending set was already cleared
// and the entry must not outlive the reset.
func (c *Cache) Apply(done Completion) {
	if !c.enabled {
		return
	}
	c.entries[done.Endpoint] = done.Resolved
	delete(c.pending, done.IP)
}

// SetEnabled toggles resolution. Disabling clears the cache and pending
// set so a later re-enable starts cold; enabling takes no eager action.
// In-flight lookups are not cancelled, their completions just get
// dropped by Apply.
func (c *Cache) SetEnabled(enabled bool) {
	if c.enabled && !enabled {
		c.entries = make(map[string]string)
		c.pending = make(map[string]struct{})
	}
	c.enabled = enabled
}

// Enabled reports whether resolution is on.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// PendingCount returns the number of IPs with a lookup in flight.
func (c *Cache) PendingCount() int {
	return len(c.pending)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
