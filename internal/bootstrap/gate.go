// Package bootstrap decides, before anything else renders, whether the app
// is uninitialized, unauthenticated, or ready.
//
// The decision is a one-shot state machine per mount:
//
//	Unknown → NeedsSetup | NeedsLogin | Ready
//
// NeedsSetup, NeedsLogin and Ready are terminal for the page lifetime; a
// fresh mount re-enters Unknown. Protected views must never observe
// Unknown.
package bootstrap

import "context"

// State is the gate's routing decision.
type State int

const (
	Unknown State = iota
	NeedsSetup
	NeedsLogin
	Ready
)

func (s State) String() string {
	switch s {
	case NeedsSetup:
		return "needs-setup"
	case NeedsLogin:
		return "needs-login"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Prober reports whether the backend still has no administrator.
type Prober interface {
	NeedsInit(ctx context.Context) (bool, error)
}

// TokenHolder exposes the presence of a credential. Satisfied by
// api.Session.
type TokenHolder interface {
	Authenticated() bool
}

// Gate evaluates the routing decision exactly once. Token presence is
// read at evaluation time; later token changes do not re-run the probe.
type Gate struct {
	prober  Prober
	session TokenHolder
	state   State
	decided bool
}

func NewGate(prober Prober, session TokenHolder) *Gate {
	return &Gate{prober: prober, session: session}
}

// State returns the last decision, or Unknown before Evaluate completes.
func (g *Gate) State() State {
	if !g.decided {
		return Unknown
	}
	return g.state
}

// Evaluate runs the decision procedure:
//
//  1. Probe the backend once for "administrator exists".
//  2. On probe failure, behave as if no initialization is needed: the
//     login path is the less destructive default when the status is
//     truly unknown.
//  3. needs_init true takes absolute precedence over any existing token.
//  4. Otherwise route on token presence.
//
// Repeated calls return the first decision without re-probing.
func (g *Gate) Evaluate(ctx context.Context) State {
	if g.decided {
		return g.state
	}

	needsInit, err := g.prober.NeedsInit(ctx)
	if err != nil {
		needsInit = false
	}

	switch {
	case needsInit:
		g.state = NeedsSetup
	case !g.session.Authenticated():
		g.state = NeedsLogin
	default:
		g.state = Ready
	}

	g.decided = true
	return g.state
}
