package main

import (
	"context"

	"github.com/cratesync/cratesync/internal/sheet"
	"github.com/urfave/cli/v3"
)

// TargetsList prints the configured sync targets and their sheet paths.
func (r *Runner) TargetsList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	targets, err := r.loadTargets(cmd, config)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(targets, cmd.Bool("pretty"))
	}

	dataDir := config.Sync.DataDir
	if flagDir := cmd.String("data-dir"); flagDir != "" {
		dataDir = flagDir
	}

	r.writePlain("Configured targets (%d):\n", len(targets))
	for _, target := range targets {
		r.writePlain("  %s (%s)\n", target.ID, target.Collection())
		r.writePlain("    playlist: %s\n", target.PlaylistURL)
		r.writePlain("    sheet: %s\n", sheet.PathFor(dataDir, target.ID))
	}

	return nil
}
