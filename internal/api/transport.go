package api

import (
	"net/http"
	"strings"
	"time"

	"schedctl/internal/shared"
)

// authTransport attaches the current session credential to every outbound
// request. It holds the Session by reference, so a Login or Logout is
// visible to the very next request with no install/uninstall window.
type authTransport struct {
	session *Session
	base    http.RoundTripper
}

// NewTransport wraps base with credential injection for the given session.
// A nil base falls back to [http.DefaultTransport].
func NewTransport(session *Session, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{session: session, base: base}
}

// NewHTTPClient returns an [http.Client] whose transport injects the
// session credential. timeout caps each request end to end so a hung
// backend cannot stall a call forever; zero means no deadline.
func NewHTTPClient(session *Session, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(session, nil),
		Timeout:   timeout,
	}
}

// RoundTrip clones the request before touching headers: the caller's
// header map is never mutated, and the single Authorization value is set
// from the token current at send time. Auth endpoints are always sent
// bare so a stale credential cannot poison a login attempt.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("X-Request-ID", shared.GenerateID())

	if !strings.HasPrefix(out.URL.Path, "/auth/") {
		if src := t.session.TokenSource(); src != nil {
			tok, err := src.Token()
			if err == nil && tok.AccessToken != "" {
				tok.SetAuthHeader(out)
			}
		}
	}

	return t.base.RoundTrip(out)
}
