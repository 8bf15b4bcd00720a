package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"schedctl/internal/models"
)

// DefaultInterval is the poll period between incremental fetches.
const DefaultInterval = 5 * time.Second

// FetchFunc requests all entries with id strictly greater than afterID.
// Satisfied by api.Client.Logs.
type FetchFunc func(ctx context.Context, afterID int64) ([]models.FeedEntry, error)

// Update is one applied merge: the full current window plus its watermark.
type Update struct {
	Entries   []models.FeedEntry
	Watermark int64
}

// Tailer polls the feed on a fixed period, merging batches into its own
// buffer. All ticks run on a single goroutine, so a slow fetch can never
// interleave with a later one or move the watermark backwards; ticks that
// fire while a fetch is outstanding coalesce.
type Tailer struct {
	fetch    FetchFunc
	interval time.Duration
	buffer   *Buffer
	logger   *log.Logger
}

// NewTailer creates a tailer with its own empty buffer. Non-positive
// interval and capacity use the defaults.
func NewTailer(fetch FetchFunc, interval time.Duration, capacity int, logger *log.Logger) *Tailer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tailer{
		fetch:    fetch,
		interval: interval,
		buffer:   NewBuffer(capacity),
		logger:   logger,
	}
}

// Run starts polling: once immediately, then every interval. Updates are
// delivered on the returned channel only when a tick changed the buffer.
// Cancelling ctx stops the timer, closes the channel, and guarantees no
// further updates; a fetch completing after cancellation is discarded.
func (t *Tailer) Run(ctx context.Context) <-chan Update {
	updates := make(chan Update, 1)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.tick(ctx, updates)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.tick(ctx, updates)
			}
		}
	}()

	return updates
}

func (t *Tailer) tick(ctx context.Context, updates chan<- Update) {
	batch, err := t.fetch(ctx, t.buffer.Watermark())
	if err != nil {
		if ctx.Err() == nil && t.logger != nil {
			t.logger.Warn("log feed fetch failed", "err", err, "after_id", t.buffer.Watermark())
		}
		return
	}
	if ctx.Err() != nil {
		// Completion arrived after teardown; applying it would leak a
		// mutation past unmount.
		return
	}

	if !t.buffer.Apply(batch) {
		return
	}

	select {
	case updates <- Update{Entries: t.buffer.Entries(), Watermark: t.buffer.Watermark()}:
	case <-ctx.Done():
	}
}
