package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SyncNow triggers a manual sync run. The sync itself runs in the
// background on the server, so this only confirms it started.
func (r *Runner) SyncNow(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("triggering manual sync")

	ack, err := r.client.SyncNow(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Sync %s\n", ack.Synced)
	if ack.Details != "" {
		r.writePlain("%s\n", ack.Details)
	}
	return nil
}
