package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/services"
	"github.com/cratesync/cratesync/internal/shared"
	"github.com/cratesync/cratesync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	service    services.Service
	logger     *log.Logger
	output     io.Writer
	engine     tasks.SyncEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Service    services.Service
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	engine := tasks.NewSheetEngine(opts.Service)

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		service:    opts.Service,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		configCommand, targetsCommand, syncCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the effective config for a command invocation. A
// --config path that exists on disk wins over the config captured at
// startup; environment credentials overlay either source.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	config := r.config

	if configPath := cmd.String("config"); configPath != "" && configPath != r.configPath {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else if !errors.Is(err, shared.ErrMissingConfig) {
			r.logger.Warnf("failed to load config %s, using startup config: %v", configPath, err)
		}
	}

	config.ApplyEnv()
	return config
}

// loadTargets reads the targets file and applies the run's selector. The
// --target flag wins over the CATEGORY_ID environment variable; with
// neither set every configured target is selected.
func (r *Runner) loadTargets(cmd *cli.Command, config *shared.Config) ([]models.Target, error) {
	targetsPath := cmd.String("targets")
	if targetsPath == "" {
		targetsPath = config.Sync.TargetsFile
	}

	targets, err := shared.LoadTargets(targetsPath)
	if err != nil {
		return nil, err
	}

	selector := cmd.String("target")
	if selector == "" {
		selector = os.Getenv(shared.EnvSelector)
	}

	return shared.SelectTargets(targets, selector)
}

// ensureEngine builds the provider service and engine on first use so
// commands that never hit the network work without credentials.
func (r *Runner) ensureEngine(config *shared.Config) (tasks.SyncEngine, error) {
	if r.service == nil {
		if !config.HasCredentials() {
			configPath := r.configPath
			if configPath == "" {
				configPath = "config.toml"
			}
			return nil, fmt.Errorf("%w: set spotify.client_id and client_secret in %s or export %s/%s",
				shared.ErrMissingCredentials, configPath, shared.EnvClientID, shared.EnvClientSecret)
		}

		opts := &services.SpotifyOpts{
			Timeout:   config.Timeout(),
			RateLimit: config.Network.RateLimit,
		}
		svc, err := services.NewSpotifyService(config.Spotify.ClientID, config.Spotify.ClientSecret, opts)
		if err != nil {
			return nil, err
		}

		r.service = svc
		r.engine = tasks.NewSheetEngine(svc)
	}

	return r.engine, nil
}

// syncOpts assembles engine options from the config with flag overrides.
func syncOpts(cmd *cli.Command, config *shared.Config) tasks.SyncOpts {
	opts := tasks.SyncOpts{
		DataDir: config.Sync.DataDir,
		DryRun:  cmd.Bool("dry-run"),
	}
	if dataDir := cmd.String("data-dir"); dataDir != "" {
		opts.DataDir = dataDir
	}
	return opts
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
