package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"schedctl/internal/shared"
)

// credentials resolves the username/password pair from flags, prompting
// for the password on stdin when the flag is omitted.
func credentials(cmd *cli.Command) (string, string, error) {
	username := cmd.String("username")
	password := cmd.String("password")

	if password == "" {
		fmt.Fprintf(os.Stderr, "password for %s: ", username)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if password == "" {
		return "", "", fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}
	return username, password, nil
}

// AuthLogin exchanges credentials for a token and stores it locally. Every
// later command sends it automatically.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	token, err := r.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return fmt.Errorf("%w: check username and password", shared.ErrInvalidCredentials)
		}
		return err
	}

	if err := r.session.Login(token.AccessToken); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.logger.Infof("logged in as %v", username)
	return r.writePlain("✓ Logged in as %s\n", username)
}

// AuthLogout discards the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Authenticated() {
		return r.writePlain("Not logged in\n")
	}
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthRegister creates the first administrator and logs in as it. The
// backend permits this exactly once.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	token, err := r.client.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, shared.ErrRegisterClosed) {
			return fmt.Errorf("%w: an administrator already exists, use auth login", shared.ErrRegisterClosed)
		}
		return err
	}

	if err := r.session.Login(token.AccessToken); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.logger.Infof("registered administrator %v", username)
	return r.writePlain("✓ Administrator %s created\n", username)
}

// AuthStatus checks backend health and reports the local session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	health, err := r.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Service is healthy\n")
	r.writePlain("Status: %s\n", health.Status)
	if r.session.Authenticated() {
		r.writePlain("Session: ✓ Logged in\n")
	} else {
		r.writePlain("Session: ✗ Not logged in\n")
	}
	return nil
}
