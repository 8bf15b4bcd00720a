// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// On start the model resolves a one-shot routing decision before anything
// else renders:
//  1. [GateView] : Probe the backend and pick the entry view
//  2. [SetupView] : Create the first administrator (offered exactly once)
//  3. [LoginView] : Exchange credentials for a session token
//  4. [DashboardView] : Live scheduler state, sync-health timeline and log tail
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Once on the dashboard, two background loops feed it: a cursor tailer streams
// merged log windows and a snapshot poller replaces the scheduler overview
// wholesale every period. Both are torn down by cancelling their context when
// the program exits or the user logs out.
//
// Panel visibility and autoscroll toggles are persisted through prefs.Store so
// they survive restarts.
package ui
