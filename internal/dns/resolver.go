package dns

import (
	"context"
	"net"
	"time"
)

// lookupTimeout bounds a single reverse lookup so a stalled resolver
// can't pin a worker slot indefinitely.
const lookupTimeout = 2 * time.Second

// ReverseResult is the outcome of one reverse lookup.
type ReverseResult struct {
	IP       string
	Hostname string
	Err      error
}

// ReverseAsync performs a reverse DNS lookup on its own goroutine and
// delivers the result on the returned channel.
func ReverseAsync(ctx context.Context, ip string) <-chan ReverseResult {
	ch := make(chan ReverseResult, 1)

	go func() {
		defer close(ch)

		ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()

		names, err := net.DefaultResolver.LookupAddr(ctx, ip)
		if err != nil || len(names) == 0 {
			ch <- ReverseResult{IP: ip, Err: err}
			return
		}

		hostname := names[0]
		if len(hostname) > 0 && hostname[len(hostname)-1] == '.' {
			hostname = hostname[:len(hostname)-1]
		}

		ch <- ReverseResult{IP: ip, Hostname: hostname}
	}()

	return ch
}

// Reverse performs a reverse DNS lookup, blocking until the lookup
// completes or times out.
func Reverse(ctx context.Context, ip string) (string, error) {
	result := <-ReverseAsync(ctx, ip)
	return result.Hostname, result.Err
}
