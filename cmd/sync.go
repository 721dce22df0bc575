package main

import (
	"context"

	"github.com/cratesync/cratesync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync rebuilds the CSV sheet for each selected target from a fresh
// provider fetch, preserving the curated override columns.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	targets, err := r.loadTargets(cmd, config)
	if err != nil {
		return err
	}

	engine, err := r.ensureEngine(config)
	if err != nil {
		return err
	}

	opts := syncOpts(cmd, config)
	r.logger.Info("starting sync", "targets", len(targets), "data_dir", opts.DataDir, "dry_run", opts.DryRun)

	// Print progress updates as they arrive; done gates the summary so it
	// never interleaves with progress lines.
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.Authenticate:
				r.writePlain("🔑 %s\n", update.Message)
			case tasks.TargetStart:
				r.writePlain("\n%s\n", update.Message)
			case tasks.TargetDone:
				r.writePlain("%s\n", update.Message)
			default:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh, targets, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		if err := result.WriteReport(reportPath); err != nil {
			return err
		}
		r.logger.Info("run report written", "path", reportPath)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	var rows, preserved int
	for _, res := range result.Targets {
		rows += res.Written
		preserved += res.Preserved
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Targets: %d\n", len(result.Targets))
	r.writePlain("Rows written: %d\n", rows)
	r.writePlain("Overrides preserved: %d\n", preserved)
	if result.DryRun {
		r.writePlain("Dry run: no sheets were written\n")
	}

	return nil
}
