package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type overview struct {
	Status string
	Runs   int
}

// scriptedFetch replays one prepared snapshot (or error) per call.
type scriptedFetch struct {
	mu    sync.Mutex
	snaps []overview
	errs  []error
	call  int
}

func (s *scriptedFetch) fn(ctx context.Context) (overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.call
	if i < len(s.snaps) {
		s.call++
	}
	if i >= len(s.snaps) {
		return overview{}, errors.New("script exhausted")
	}
	return s.snaps[i], s.errs[i]
}

func (s *scriptedFetch) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.call
}

func waitSnapshot(t *testing.T, snapshots <-chan overview) overview {
	t.Helper()
	select {
	case snap, ok := <-snapshots:
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return overview{}
}

func TestPoller(t *testing.T) {
	t.Run("Fetches Immediately On Start", func(t *testing.T) {
		fetch := &scriptedFetch{
			snaps: []overview{{Status: "running", Runs: 3}},
			errs:  []error{nil},
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		snapshots := NewPoller("overview", fetch.fn, time.Hour, nil).Run(ctx)

		snap := waitSnapshot(t, snapshots)
		if snap.Status != "running" || snap.Runs != 3 {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if fetch.calls() != 1 {
			t.Errorf("expected exactly 1 fetch, got %d", fetch.calls())
		}
	})

	t.Run("Each Fetch Replaces The Snapshot Wholesale", func(t *testing.T) {
		fetch := &scriptedFetch{
			snaps: []overview{{Status: "running", Runs: 5}, {Status: "stopped", Runs: 1}},
			errs:  []error{nil, nil},
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		snapshots := NewPoller("overview", fetch.fn, 5*time.Millisecond, nil).Run(ctx)

		if snap := waitSnapshot(t, snapshots); snap.Runs != 5 {
			t.Fatalf("expected 5 runs, got %d", snap.Runs)
		}
		// The second snapshot carries no trace of the first: the run
		// count shrinks instead of accumulating.
		if snap := waitSnapshot(t, snapshots); snap.Status != "stopped" || snap.Runs != 1 {
			t.Errorf("unexpected replacement snapshot: %+v", snap)
		}
	})

	t.Run("Failed Fetch Delivers Nothing", func(t *testing.T) {
		fetch := &scriptedFetch{
			snaps: []overview{{Status: "running"}, {}, {Status: "stopped"}},
			errs:  []error{nil, errors.New("backend down"), nil},
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		snapshots := NewPoller("overview", fetch.fn, 5*time.Millisecond, nil).Run(ctx)

		if snap := waitSnapshot(t, snapshots); snap.Status != "running" {
			t.Fatalf("unexpected first snapshot: %+v", snap)
		}
		// The failed tick is skipped; the next delivery is the recovery.
		if snap := waitSnapshot(t, snapshots); snap.Status != "stopped" {
			t.Errorf("expected recovery snapshot, got %+v", snap)
		}
	})

	t.Run("Cancellation Closes The Channel", func(t *testing.T) {
		fetch := &scriptedFetch{
			snaps: []overview{{Status: "running"}},
			errs:  []error{nil},
		}
		ctx, cancel := context.WithCancel(context.Background())

		snapshots := NewPoller("overview", fetch.fn, time.Hour, nil).Run(ctx)
		waitSnapshot(t, snapshots)

		cancel()
		select {
		case _, ok := <-snapshots:
			if ok {
				t.Error("expected no snapshot after cancellation")
			}
		case <-time.After(time.Second):
			t.Fatal("channel not closed after cancellation")
		}
	})

	t.Run("Fetch Completing After Cancellation Is Discarded", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		release := make(chan struct{})

		poller := NewPoller("overview", func(ctx context.Context) (overview, error) {
			close(started)
			<-release
			return overview{Status: "running"}, nil
		}, time.Hour, nil)
		snapshots := poller.Run(ctx)

		<-started
		cancel()
		close(release)

		select {
		case snap, ok := <-snapshots:
			if ok {
				t.Errorf("expected channel close, got snapshot %+v", snap)
			}
		case <-time.After(time.Second):
			t.Fatal("channel not closed after cancellation")
		}
	})
}
