// Package snapshot polls backend resources whose responses are complete
// point-in-time states rather than increments. Each successful fetch
// replaces the previous snapshot wholesale; a failed fetch logs and keeps
// the last good snapshot so the view degrades to stale instead of empty.
package snapshot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the poll period between fetches.
const DefaultInterval = 5 * time.Second

// FetchFunc retrieves one complete snapshot of the resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller repeatedly fetches a resource and publishes each replacement.
// All fetches run on a single goroutine, so snapshots are published in
// fetch order and a slow fetch can never interleave with a later one.
type Poller[T any] struct {
	name     string
	fetch    FetchFunc[T]
	interval time.Duration
	logger   *log.Logger
}

// NewPoller creates a poller for the named resource. A non-positive
// interval uses [DefaultInterval].
func NewPoller[T any](name string, fetch FetchFunc[T], interval time.Duration, logger *log.Logger) *Poller[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller[T]{name: name, fetch: fetch, interval: interval, logger: logger}
}

// Run starts polling: once immediately, then every interval. Each
// successful fetch is delivered on the returned channel; failures are
// logged and deliver nothing, leaving the consumer's last snapshot in
// place. Cancelling ctx stops the timer and closes the channel.
func (p *Poller[T]) Run(ctx context.Context) <-chan T {
	snapshots := make(chan T, 1)

	go func() {
		defer close(snapshots)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.poll(ctx, snapshots)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx, snapshots)
			}
		}
	}()

	return snapshots
}

func (p *Poller[T]) poll(ctx context.Context, snapshots chan<- T) {
	snap, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil && p.logger != nil {
			p.logger.Warn("snapshot fetch failed", "resource", p.name, "err", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	select {
	case snapshots <- snap:
	case <-ctx.Done():
	}
}
