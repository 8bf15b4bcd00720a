package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"schedctl/internal/models"
	"schedctl/internal/shared"
)

// accountFromFlags overlays set flags onto the given base settings.
func accountFromFlags(cmd *cli.Command, base models.Account) models.Account {
	if cmd.IsSet("username") {
		base.Username = cmd.String("username")
	}
	if cmd.IsSet("password") {
		base.Password = cmd.String("password")
	}
	if cmd.IsSet("mail") {
		base.UserMailAccount = cmd.String("mail")
	}
	if cmd.IsSet("intervals") {
		base.ParsingIntervals = cmd.String("intervals")
	}
	if cmd.IsSet("calendar") {
		base.CalendarName = cmd.String("calendar")
	}
	return base
}

func readCredentialsFlag(cmd *cli.Command) ([]byte, error) {
	path := cmd.String("credentials")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

// AccountShow prints the stored backend settings with the password masked.
func (r *Runner) AccountShow(ctx context.Context, cmd *cli.Command) error {
	account, err := r.client.Account(ctx)
	if err != nil {
		return err
	}

	masked := *account
	if masked.Password != "" {
		masked.Password = "********"
	}

	if cmd.Bool("json") {
		return r.writeJSON(masked, true)
	}

	r.writePlainHeader("Account settings")
	r.writePlain("Username: %s\n", masked.Username)
	r.writePlain("Password: %s\n", masked.Password)
	r.writePlain("Mail account: %s\n", masked.UserMailAccount)
	r.writePlain("Parsing intervals: %s\n", masked.ParsingIntervals)
	r.writePlain("Calendar: %s\n", masked.CalendarName)
	return nil
}

// AccountUpdate merges the set flags into the current settings and writes
// them back. Unset flags keep their stored values.
func (r *Runner) AccountUpdate(ctx context.Context, cmd *cli.Command) error {
	current, err := r.client.Account(ctx)
	if err != nil {
		return err
	}

	account := accountFromFlags(cmd, *current)
	credentials, err := readCredentialsFlag(cmd)
	if err != nil {
		return err
	}

	if err := r.client.UpdateAccount(ctx, account, credentials); err != nil {
		return err
	}

	r.logger.Info("account settings updated")
	return r.writePlain("✓ Settings saved\n")
}

// Setup performs the first-run backend configuration. Unlike update, the
// credentials file is mandatory here.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	account := accountFromFlags(cmd, models.Account{})
	if account.Username == "" || account.Password == "" {
		return fmt.Errorf("%w: --username and --password are required", shared.ErrMissingArgument)
	}

	credentials, err := readCredentialsFlag(cmd)
	if err != nil {
		return err
	}

	if err := r.client.Setup(ctx, account, credentials); err != nil {
		return err
	}

	r.logger.Info("first-run setup complete")
	return r.writePlain("✓ Setup complete\n")
}
