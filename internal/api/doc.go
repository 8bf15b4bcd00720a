// Package api implements the authenticated HTTP client for the
// schedule-sync backend.
//
// # Session
//
// [Session] owns the current bearer credential and is the single source of
// truth for "is the user authenticated". It loads the persisted token at
// construction, and Login/Logout atomically swap the token, persist the
// change, and notify subscribers.
//
// # Transport
//
// [NewTransport] returns an [net/http.RoundTripper] that draws the current
// token through the Session's [golang.org/x/oauth2.TokenSource] on every
// request. The transport clones the request before setting the
// Authorization header, so caller-owned header maps are never mutated and
// no request can carry a stale token. Requests to /auth/ paths are sent
// without the header. The transport performs no retries and does not
// interpret 401 responses; that is the caller's concern.
//
// # Client
//
// [Client] exposes one method per backend endpoint and throttles outbound
// requests through a [golang.org/x/time/rate.Limiter] so concurrent pollers
// cannot stampede the backend.
package api
