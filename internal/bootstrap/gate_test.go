package bootstrap

import (
	"context"
	"errors"
	"testing"
)

type stubProber struct {
	needsInit bool
	err       error
	calls     int
}

func (p *stubProber) NeedsInit(ctx context.Context) (bool, error) {
	p.calls++
	return p.needsInit, p.err
}

type stubSession struct{ authed bool }

func (s *stubSession) Authenticated() bool { return s.authed }

func TestGate(t *testing.T) {
	cases := []struct {
		name      string
		needsInit bool
		probeErr  error
		authed    bool
		want      State
	}{
		{"Probe True Without Token", true, nil, false, NeedsSetup},
		{"Probe True Overrides Token", true, nil, true, NeedsSetup},
		{"Probe False Without Token", false, nil, false, NeedsLogin},
		{"Probe False With Token", false, nil, true, Ready},
		{"Probe Error Without Token", false, errors.New("boom"), false, NeedsLogin},
		{"Probe Error With Token", false, errors.New("boom"), true, Ready},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewGate(&stubProber{needsInit: tc.needsInit, err: tc.probeErr}, &stubSession{authed: tc.authed})

			if gate.State() != Unknown {
				t.Errorf("expected Unknown before evaluation, got %v", gate.State())
			}
			if got := gate.Evaluate(context.Background()); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if gate.State() != tc.want {
				t.Errorf("expected stored state %v, got %v", tc.want, gate.State())
			}
		})
	}

	t.Run("Evaluates Exactly Once", func(t *testing.T) {
		prober := &stubProber{needsInit: false}
		session := &stubSession{authed: false}
		gate := NewGate(prober, session)

		if got := gate.Evaluate(context.Background()); got != NeedsLogin {
			t.Fatalf("expected NeedsLogin, got %v", got)
		}

		// A later token change must not re-run the probe or flip the state.
		session.authed = true
		if got := gate.Evaluate(context.Background()); got != NeedsLogin {
			t.Errorf("expected decision to be terminal, got %v", got)
		}
		if prober.calls != 1 {
			t.Errorf("expected exactly 1 probe, got %d", prober.calls)
		}
	})
}
