package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"schedctl/internal/feed"
	"schedctl/internal/formatter"
	"schedctl/internal/models"
)

// Logs prints the backend log feed. With --follow it keeps the cursor
// tailer running and prints each newly merged entry until interrupted.
func (r *Runner) Logs(ctx context.Context, cmd *cli.Command) error {
	tsf, err := feed.NewFormatter(r.config.Display.TimeZone)
	if err != nil {
		return err
	}

	printEntry := func(entry models.FeedEntry) {
		r.writePlain("%s %-7s %s\n", tsf.Timestamp(entry.TS), entry.Level, feed.CleanMessage(entry.Msg))
	}

	if !cmd.Bool("follow") {
		entries, err := r.client.Logs(ctx, int64(cmd.Int("after")))
		if err != nil {
			return err
		}
		if cmd.IsSet("save") {
			path, err := formatter.WriteLogsCSV(entries, cmd.String("save"))
			if err != nil {
				return err
			}
			return r.writePlain("✓ Exported %d entries to %s\n", len(entries), path)
		}
		if cmd.Bool("json") {
			return r.writeJSON(entries, true)
		}
		for _, entry := range entries {
			printEntry(entry)
		}
		return nil
	}

	r.logger.Info("following log feed, ctrl+c to stop")

	printed := int64(cmd.Int("after"))
	tailer := feed.NewTailer(r.client.Logs, r.config.PollInterval(), 0, r.logger)
	for update := range tailer.Run(ctx) {
		for _, entry := range update.Entries {
			if entry.ID <= printed {
				continue
			}
			printEntry(entry)
			printed = entry.ID
		}
	}
	return nil
}
