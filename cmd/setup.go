package main

import (
	"context"
	"os"

	"github.com/cratesync/cratesync/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit scaffolds config.toml and a starter targets file from the
// embedded templates.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Created %s\n", configPath)

	targetsPath := cmd.String("targets")
	if targetsPath == "" {
		targetsPath = shared.DefaultConfig().Sync.TargetsFile
	}

	if _, err := os.Stat(targetsPath); os.IsNotExist(err) {
		if err := shared.CreateTargetsFile(targetsPath); err != nil {
			return err
		}
		r.logger.Info("targets file created", "path", targetsPath)
		r.writePlain("✓ Created %s\n", targetsPath)
	} else {
		r.logger.Info("targets file already present", "path", targetsPath)
	}

	r.writePlainln("Next steps:")
	r.writePlain("1. Add Spotify credentials to %s (or export %s / %s)\n", configPath, shared.EnvClientID, shared.EnvClientSecret)
	r.writePlain("2. Declare your playlists in %s\n", targetsPath)
	r.writePlain("3. Run 'cratesync sync' to build your sheets\n")

	return nil
}
