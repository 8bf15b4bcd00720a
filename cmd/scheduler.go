package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"schedctl/internal/formatter"
)

// SchedulerStart starts the backend scheduler with the requested interval.
func (r *Runner) SchedulerStart(ctx context.Context, cmd *cli.Command) error {
	interval := cmd.Int("interval")
	r.logger.Infof("starting scheduler with %v minute interval", interval)

	ack, err := r.client.StartScheduler(ctx, interval)
	if err != nil {
		return err
	}

	if ack.PID != 0 {
		return r.writePlain("✓ Scheduler %s (pid %d)\n", ack.Scheduler, ack.PID)
	}
	return r.writePlain("✓ Scheduler %s\n", ack.Scheduler)
}

// SchedulerStop stops the backend scheduler.
func (r *Runner) SchedulerStop(ctx context.Context, cmd *cli.Command) error {
	ack, err := r.client.StopScheduler(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Scheduler %s\n", ack.Scheduler)
}

// SchedulerStatus prints the scheduler overview: process state, configured
// run times, and recent runs.
func (r *Runner) SchedulerStatus(ctx context.Context, cmd *cli.Command) error {
	overview, err := r.client.SchedulerOverview(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(overview, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Scheduler")
	r.writePlain("State: %s\n", overview.Status)
	if len(overview.Intervals) > 0 {
		r.writePlain("Runs at: %s\n", strings.Join(overview.Intervals, ", "))
	}

	if len(overview.Runs) > 0 {
		r.writePlain("\nRecent runs:\n")
		for _, run := range overview.Runs {
			marker := "✗"
			if run.Status.Succeeded() {
				marker = "✓"
			}
			r.writePlain("  %s %s %s", marker, run.Time, run.Status)
			if run.Detail != nil && *run.Detail != "" {
				r.writePlain(" (%s)", *run.Detail)
			}
			r.writePlain("\n")
		}
	}
	return nil
}

// SchedulerTimeline prints the trailing per-day sync-health window.
func (r *Runner) SchedulerTimeline(ctx context.Context, cmd *cli.Command) error {
	days, err := r.client.Timeline(ctx, cmd.Int("days"))
	if err != nil {
		return err
	}

	if cmd.IsSet("save") {
		path, err := formatter.WriteTimelineMarkdown(days, cmd.String("save"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d days to %s\n", len(days), path)
	}
	if cmd.Bool("json") {
		return r.writeJSON(days, true)
	}

	r.writePlainHeader("Sync health")
	for _, day := range days {
		marker := "?"
		switch day.Status {
		case "ok":
			marker = "✓"
		case "error":
			marker = "✗"
		case "warn":
			marker = "!"
		}
		r.writePlain("%s %s", marker, day.Date)
		if day.Message != "" {
			r.writePlain("  %s", day.Message)
		}
		r.writePlain("\n")
	}
	return nil
}
