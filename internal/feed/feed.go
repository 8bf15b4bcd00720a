// Package feed keeps a bounded local window of the backend's append-only
// log feed in sync using a monotonically increasing watermark cursor.
//
// The server assigns every entry a unique increasing id and never re-sends
// an id at or below the requested cursor, so merging a fetched batch is
// idempotent by construction. [Buffer] enforces the window invariants;
// [Tailer] drives the periodic fetch.
package feed

import (
	"fmt"
	"regexp"
	"time"

	"schedctl/internal/models"
)

// DefaultCapacity is the bounded window size: once exceeded, the oldest
// entries are dropped first.
const DefaultCapacity = 100

// Buffer is an ordered window of feed entries with strictly increasing
// ids. The watermark is the id of the last element, or 0 when empty, and
// parameterizes the next fetch.
type Buffer struct {
	capacity int
	entries  []models.FeedEntry
}

// NewBuffer creates an empty buffer. A non-positive capacity uses
// [DefaultCapacity].
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Watermark returns the id of the newest merged entry, or 0 when empty.
func (b *Buffer) Watermark() int64 {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[len(b.entries)-1].ID
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int { return len(b.entries) }

// Entries returns a copy of the current window, oldest first.
func (b *Buffer) Entries() []models.FeedEntry {
	return append([]models.FeedEntry(nil), b.entries...)
}

// Apply merges a fetched batch into the window and reports whether
// anything changed. Empty batches are a no-op. Entries at or below the
// current watermark are discarded so the id sequence stays strictly
// increasing even against a misbehaving server. After the merge the
// window is truncated to capacity, oldest dropped first.
func (b *Buffer) Apply(batch []models.FeedEntry) bool {
	changed := false
	for _, entry := range batch {
		if entry.ID <= b.Watermark() {
			continue
		}
		b.entries = append(b.entries, entry)
		changed = true
	}

	if len(b.entries) > b.capacity {
		b.entries = append([]models.FeedEntry(nil), b.entries[len(b.entries)-b.capacity:]...)
	}

	return changed
}

var (
	levelPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} (INFO|ERROR|WARNING|DEBUG): ?`)
	tsPrefixRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} ?`)
)

// CleanMessage strips a redundant "YYYY-MM-DD HH:MM:SS,mmm LEVEL:" prefix
// that the backend logger embeds in some messages; the timestamp and level
// are already conveyed structurally. A bare timestamp prefix is stripped
// as a fallback; anything else is returned untouched.
func CleanMessage(msg string) string {
	if m := levelPrefixRe.FindString(msg); m != "" {
		return msg[len(m):]
	}
	if m := tsPrefixRe.FindString(msg); m != "" {
		return msg[len(m):]
	}
	return msg
}

// Formatter renders feed timestamps in one fixed named time zone,
// regardless of the viewer's local zone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter loads the named zone (e.g. "Asia/Vladivostok").
func NewFormatter(zone string) (*Formatter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", zone, err)
	}
	return &Formatter{loc: loc}, nil
}

// Timestamp converts a feed entry's TS (ISO-8601, implicitly UTC) into the
// display zone. Unparsable values are returned as-is.
func (f *Formatter) Timestamp(ts string) string {
	for _, layout := range []string{"2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t.In(f.loc).Format("2006-01-02 15:04:05")
		}
	}
	return ts
}
