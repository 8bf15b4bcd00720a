package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"schedctl/internal/shared"
)

// ConfigInit writes a config.toml with the embedded defaults.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Infof("wrote %v", path)
	return r.writePlain("✓ Created %s\n", path)
}

// ConfigShow prints the effective configuration.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Configuration")
	r.writePlain("Backend: %s\n", r.config.Server.BaseURL)
	r.writePlain("Poll interval: %v\n", r.config.PollInterval())
	r.writePlain("Request timeout: %v\n", r.config.Timeout())
	r.writePlain("Preference DB: %s\n", r.config.Database.Path)
	r.writePlain("Time zone: %s\n", r.config.Display.TimeZone)
	r.writePlain("Timeline days: %d\n", r.config.Display.TimelineDays)
	return nil
}
