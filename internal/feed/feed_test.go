package feed

import (
	"testing"

	"schedctl/internal/models"
)

func entries(ids ...int64) []models.FeedEntry {
	out := make([]models.FeedEntry, len(ids))
	for i, id := range ids {
		out[i] = models.FeedEntry{ID: id, Level: models.LevelInfo, Msg: "m"}
	}
	return out
}

func TestBuffer(t *testing.T) {
	t.Run("Empty Buffer Has Zero Watermark", func(t *testing.T) {
		b := NewBuffer(100)
		if b.Watermark() != 0 {
			t.Errorf("expected watermark 0, got %d", b.Watermark())
		}
		if b.Len() != 0 {
			t.Errorf("expected empty buffer, got %d entries", b.Len())
		}
	})

	t.Run("Empty Batch Is A No-Op", func(t *testing.T) {
		b := NewBuffer(100)
		b.Apply(entries(1, 2, 3))

		if b.Apply(nil) {
			t.Error("expected nil batch to report no change")
		}
		if b.Apply([]models.FeedEntry{}) {
			t.Error("expected empty batch to report no change")
		}
		if b.Watermark() != 3 || b.Len() != 3 {
			t.Errorf("expected buffer unchanged, got len=%d watermark=%d", b.Len(), b.Watermark())
		}
	})

	t.Run("Merge Advances Watermark", func(t *testing.T) {
		b := NewBuffer(100)
		b.Apply(entries(97, 98))

		if !b.Apply(entries(99, 100)) {
			t.Fatal("expected merge to report change")
		}

		got := b.Entries()
		want := []int64{97, 98, 99, 100}
		if len(got) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(got))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("entry %d: expected id %d, got %d", i, id, got[i].ID)
			}
		}
		if b.Watermark() != 100 {
			t.Errorf("expected watermark 100, got %d", b.Watermark())
		}
	})

	t.Run("Truncates To Capacity Oldest First", func(t *testing.T) {
		b := NewBuffer(100)

		var batch []models.FeedEntry
		for id := int64(1); id <= 150; id++ {
			batch = append(batch, models.FeedEntry{ID: id})
		}
		b.Apply(batch)

		if b.Len() != 100 {
			t.Fatalf("expected 100 entries, got %d", b.Len())
		}
		if first := b.Entries()[0].ID; first != 51 {
			t.Errorf("expected oldest surviving id 51, got %d", first)
		}
		if b.Watermark() != 150 {
			t.Errorf("expected watermark 150, got %d", b.Watermark())
		}
	})

	t.Run("Ids Stay Strictly Increasing", func(t *testing.T) {
		b := NewBuffer(100)
		b.Apply(entries(5, 6, 7))

		// A batch at or below the watermark must be discarded.
		b.Apply(entries(3, 6, 7, 8))

		prev := int64(0)
		for _, e := range b.Entries() {
			if e.ID <= prev {
				t.Fatalf("ids not strictly increasing: %d after %d", e.ID, prev)
			}
			prev = e.ID
		}
		if b.Watermark() != 8 {
			t.Errorf("expected watermark 8, got %d", b.Watermark())
		}
	})
}

func TestCleanMessage(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"Level Prefix", "2024-01-01 10:00:00,123 INFO: hello", "hello"},
		{"Level Prefix Without Space", "2024-01-01 10:00:00,123 ERROR:boom", "boom"},
		{"Warning Prefix", "2024-01-01 10:00:00,123 WARNING: careful", "careful"},
		{"Bare Timestamp Prefix", "2024-01-01 10:00:00,123 plain text", "plain text"},
		{"No Prefix", "just a message", "just a message"},
		{"Level Word Without Timestamp", "INFO: untouched", "INFO: untouched"},
		{"Empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanMessage(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	t.Run("Converts To Fixed Zone", func(t *testing.T) {
		f, err := NewFormatter("Asia/Vladivostok")
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}

		// Vladivostok is UTC+10.
		if got := f.Timestamp("2024-01-01T10:00:00"); got != "2024-01-01 20:00:00" {
			t.Errorf("expected '2024-01-01 20:00:00', got %q", got)
		}
	})

	t.Run("Handles Fractional Seconds", func(t *testing.T) {
		f, _ := NewFormatter("UTC")
		if got := f.Timestamp("2024-01-01T10:00:00.123456"); got != "2024-01-01 10:00:00" {
			t.Errorf("expected '2024-01-01 10:00:00', got %q", got)
		}
	})

	t.Run("Unparsable Value Passes Through", func(t *testing.T) {
		f, _ := NewFormatter("UTC")
		if got := f.Timestamp("yesterday"); got != "yesterday" {
			t.Errorf("expected pass-through, got %q", got)
		}
	})

	t.Run("Unknown Zone", func(t *testing.T) {
		if _, err := NewFormatter("Mars/Olympus"); err == nil {
			t.Error("expected error for unknown zone")
		}
	})
}
