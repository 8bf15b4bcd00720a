package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"schedctl/internal/bootstrap"
	"schedctl/internal/feed"
	"schedctl/internal/models"
)

// gateDecidedMsg carries the one-shot routing decision.
type gateDecidedMsg struct {
	state bootstrap.State
}

// authDoneMsg reports the outcome of a login or register attempt.
type authDoneMsg struct {
	err error
}

// feedUpdateMsg is one merged log window from the tailer.
type feedUpdateMsg feed.Update

// feedClosedMsg signals the tailer channel closed (teardown).
type feedClosedMsg struct{}

// overviewMsg is one scheduler snapshot from the poller.
type overviewMsg struct {
	overview *models.SchedulerOverview
}

// overviewClosedMsg signals the poller channel closed (teardown).
type overviewClosedMsg struct{}

// timelineMsg carries the once-per-mount sync-health window.
type timelineMsg struct {
	days []models.TimelineDay
	err  error
}

// actionDoneMsg reports the outcome of a fire-and-forget action
// (manual sync, scheduler start/stop).
type actionDoneMsg struct {
	status string
	err    error
}

var (
	_ tea.Msg = gateDecidedMsg{}
	_ tea.Msg = authDoneMsg{}
	_ tea.Msg = feedUpdateMsg{}
	_ tea.Msg = overviewMsg{}
	_ tea.Msg = timelineMsg{}
	_ tea.Msg = actionDoneMsg{}
)
