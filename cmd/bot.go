package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"schedctl/internal/api"
)

// BotStatus reports whether the companion bot is enabled.
func (r *Runner) BotStatus(ctx context.Context, cmd *cli.Command) error {
	settings, err := r.client.BotSettings(ctx)
	if err != nil {
		return err
	}

	if settings.BotEnabled {
		return r.writePlain("Bot: ✓ enabled\n")
	}
	return r.writePlain("Bot: ✗ disabled\n")
}

// BotEnable turns the companion bot on.
func (r *Runner) BotEnable(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.SetBotSettings(ctx, true); err != nil {
		return err
	}
	return r.writePlain("✓ Bot enabled\n")
}

// BotDisable turns the companion bot off.
func (r *Runner) BotDisable(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.SetBotSettings(ctx, false); err != nil {
		return err
	}
	return r.writePlain("✓ Bot disabled\n")
}

// BotConfig shows the bot credentials, or patches them when --token or
// --admins is set. Unset fields are left untouched by the backend.
func (r *Runner) BotConfig(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("token") || cmd.IsSet("admins") {
		var patch api.BotConfigPatch
		if cmd.IsSet("token") {
			token := cmd.String("token")
			patch.BotToken = &token
		}
		if cmd.IsSet("admins") {
			admins := cmd.String("admins")
			patch.AdminIDs = &admins
		}

		if err := r.client.PatchBotConfig(ctx, patch); err != nil {
			return err
		}
		r.logger.Info("bot config updated")
		return r.writePlain("✓ Bot config saved\n")
	}

	config, err := r.client.BotConfig(ctx)
	if err != nil {
		return err
	}

	token := config.BotToken
	if len(token) > 8 {
		token = token[:8] + "..."
	}
	r.writePlain("Token: %s\n", token)
	r.writePlain("Admins: %s\n", config.AdminIDs)
	return nil
}
