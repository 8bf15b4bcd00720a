package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Level is the severity of a [FeedEntry].
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// FeedEntry represents one row of the append-only backend log feed.
//
// IDs are server-assigned, unique and monotonically increasing; TS is an
// ISO-8601 instant in UTC without an explicit zone suffix.
type FeedEntry struct {
	ID    int64  `json:"id"`
	TS    string `json:"ts"`
	Level Level  `json:"level"`
	Msg   string `json:"msg"`
}

// JobStatus is the lifecycle state of a scheduler run.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobStarted JobStatus = "started"
	JobDone    JobStatus = "done"
	JobSuccess JobStatus = "success"
	JobError   JobStatus = "error"
)

// Succeeded reports whether the run finished without error.
func (s JobStatus) Succeeded() bool {
	return s == JobDone || s == JobSuccess
}

// ParseRun is a single scheduler run as reported by the overview endpoint.
type ParseRun struct {
	Time   string    `json:"time"`
	Status JobStatus `json:"status"`
	Detail *string   `json:"detail"`
}

// SchedulerOverview is the full point-in-time scheduler state.
// Each poll replaces the previous value wholesale.
type SchedulerOverview struct {
	Status    string     `json:"status"`
	Intervals []string   `json:"intervals"`
	Runs      []ParseRun `json:"runs"`
}

// Running reports whether the scheduler process is alive.
func (o SchedulerOverview) Running() bool { return o.Status == "running" }

// TimelineDay is one day of the trailing sync-health window.
// Status is one of "ok", "warn" or "error".
type TimelineDay struct {
	Date    string `json:"date"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Token is the credential issued by the auth endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Account is the editable settings field map stored by the backend.
// The backend returns these as an upper-snake keyed object.
type Account struct {
	Username         string `json:"USERNAME"`
	Password         string `json:"PASSWORD"`
	UserMailAccount  string `json:"USER_MAIL_ACCOUNT"`
	ParsingIntervals string `json:"PARSING_INTERVALS"`
	CalendarName     string `json:"CALENDAR_NAME"`
}

// BotSettings is the companion bot on/off toggle.
type BotSettings struct {
	BotEnabled bool `json:"bot_enabled"`
}

// BotConfig holds the companion bot credentials.
// AdminIDs is a comma separated list of chat IDs.
type BotConfig struct {
	BotToken string `json:"bot_token"`
	AdminIDs string `json:"admin_ids"`
}

// Health is the backend liveness payload.
type Health struct {
	Status string `json:"status"`
}

// SyncAck acknowledges a manual sync trigger. The sync itself runs in the
// background on the server.
type SyncAck struct {
	Synced  string `json:"synced"`
	Details string `json:"details"`
}

// SchedulerAck acknowledges a scheduler start/stop request.
type SchedulerAck struct {
	Scheduler string `json:"scheduler"`
	PID       int    `json:"pid,omitempty"`
}

var intervalRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ValidateIntervals checks a comma separated list of HH:MM times
// (e.g. "08:00,13:30,18:00"). Both 8:00 and 08:00 are accepted.
func ValidateIntervals(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("parsing intervals are required")
	}
	for _, t := range strings.Split(input, ",") {
		if !intervalRe.MatchString(strings.TrimSpace(t)) {
			return fmt.Errorf("invalid interval %q: expected HH:MM", strings.TrimSpace(t))
		}
	}
	return nil
}
