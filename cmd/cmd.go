// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configCommand manages the local configuration file.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage local configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config.toml with default settings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session token locally",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Administrator username",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Administrator password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:  "register",
				Usage: "Create the first administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Administrator username",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Administrator password (prompted when omitted)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "status",
				Usage:  "Check backend health and session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand performs first-run backend configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "First-run backend configuration (requires a credentials file)",
		Flags: append(accountFlags(), &cli.StringFlag{
			Name:     "credentials",
			Usage:    "Path to the service-account credentials JSON",
			Required: true,
		}),
		Action: r.Setup,
	}
}

// schedulerCommand controls the backend's background scheduler.
func schedulerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "scheduler",
		Aliases: []string{"sched"},
		Usage:   "Control the background scheduler",
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start the scheduler",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Run interval in minutes",
						Value:   60,
					},
				},
				Action: r.SchedulerStart,
			},
			{
				Name:   "stop",
				Usage:  "Stop the scheduler",
				Action: r.SchedulerStop,
			},
			{
				Name:  "status",
				Usage: "Show scheduler state and recent runs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SchedulerStatus,
			},
			{
				Name:  "timeline",
				Usage: "Show the trailing sync-health window",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Usage:   "Number of trailing days",
						Value:   30,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "save",
						Usage: "Export the window to a Markdown file at this path",
					},
				},
				Action: r.SchedulerTimeline,
			},
		},
	}
}

// syncCommand triggers a manual sync run.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Trigger a sync run now",
		Action: r.SyncNow,
	}
}

// logsCommand tails the backend log feed.
func logsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Show backend logs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "after",
				Usage: "Only entries with id greater than this",
			},
			&cli.BoolFlag{
				Name:    "follow",
				Aliases: []string{"f"},
				Usage:   "Keep polling for new entries",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Export entries to a CSV file at this path",
			},
		},
		Action: r.Logs,
	}
}

func accountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "username",
			Usage: "Schedule portal username",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "Schedule portal password",
		},
		&cli.StringFlag{
			Name:  "mail",
			Usage: "Mail account used for calendar sharing",
		},
		&cli.StringFlag{
			Name:  "intervals",
			Usage: "Comma separated HH:MM run times (e.g. 08:00,13:30)",
		},
		&cli.StringFlag{
			Name:  "calendar",
			Usage: "Target calendar name",
		},
	}
}

// accountCommand manages the backend's stored account settings.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage backend account settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show stored settings (password masked)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AccountShow,
			},
			{
				Name:  "update",
				Usage: "Update stored settings; omitted flags keep current values",
				Flags: append(accountFlags(), &cli.StringFlag{
					Name:  "credentials",
					Usage: "Replace the service-account credentials JSON",
				}),
				Action: r.AccountUpdate,
			},
		},
	}
}

// botCommand manages the companion notification bot.
func botCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bot",
		Usage: "Manage the companion notification bot",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show whether the bot is enabled",
				Action: r.BotStatus,
			},
			{
				Name:   "enable",
				Usage:  "Enable the bot",
				Action: r.BotEnable,
			},
			{
				Name:   "disable",
				Usage:  "Disable the bot",
				Action: r.BotDisable,
			},
			{
				Name:  "config",
				Usage: "Show or change bot credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "token",
						Usage: "Bot API token",
					},
					&cli.StringFlag{
						Name:  "admins",
						Usage: "Comma separated admin chat IDs",
					},
				},
				Action: r.BotConfig,
			},
		},
	}
}

// dashboardCommand returns the top-level TUI command for the live dashboard.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.Dashboard,
	}
}
