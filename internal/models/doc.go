// Package models defines the domain entities exchanged with the schedule-sync backend.
//
// All types are Data Transfer Objects shaped after the backend's JSON payloads:
//   - [FeedEntry] : One line of the server-ordered log feed (cursor = ID)
//   - [SchedulerOverview] : Point-in-time scheduler state with recent runs
//   - [TimelineDay] : One day of the trailing sync-health timeline
//   - [Account] : The editable settings field map
//   - [BotSettings] / [BotConfig] : Companion bot toggle and credentials
//
// Entries of the log feed are immutable once received; their ordering key is
// the server-assigned ID, not arrival order.
package models
