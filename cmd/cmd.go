// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// syncCommand runs the playlist-to-sheet pipeline.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Rebuild CSV sheets from Spotify, preserving override columns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "targets",
				Usage: "Path to targets file (overrides sync.targets_file)",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Sync a single target by id (default: CATEGORY_ID env, else all)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Sheet output directory (overrides sync.data_dir)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Run the pipeline without writing sheets",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON run report to this path",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output run result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Sync,
	}
}

// targetsCommand handles target list operations
func targetsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "targets",
		Usage: "Inspect configured sync targets",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List configured targets and their sheet paths",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "targets",
						Usage: "Path to targets file (overrides sync.targets_file)",
					},
					&cli.StringFlag{
						Name:    "target",
						Aliases: []string{"t"},
						Usage:   "Show a single target by id",
					},
					&cli.StringFlag{
						Name:  "data-dir",
						Usage: "Sheet output directory (overrides sync.data_dir)",
					},
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
				Action: r.TargetsList,
			},
		},
	}
}

// configCommand handles configuration scaffolding
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration files",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create config.toml and a starter targets file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "targets",
						Usage: "Path for the targets file (default: sync.targets_file)",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive syncing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for sheet syncing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "targets",
				Usage: "Path to targets file (overrides sync.targets_file)",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Preselect a single target by id",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Sheet output directory (overrides sync.data_dir)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Run the pipeline without writing sheets",
			},
		},
		Action: r.TUI,
	}
}
