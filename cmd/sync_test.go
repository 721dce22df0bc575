package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/shared"
	tu "github.com/cratesync/cratesync/internal/testing"
	"github.com/urfave/cli/v3"
)

// testApp wires a runner over the mock service and returns the CLI tree
// plus the buffer command output lands in.
func testApp(svc *tu.MockService) (*cli.Command, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Service: svc,
		Logger:  shared.NewLogger(io.Discard),
		Output:  output,
	})

	app := &cli.Command{
		Name:     "cratesync",
		Commands: runner.register(),
	}
	return app, output
}

func testService() *tu.MockService {
	return &tu.MockService{
		Items: map[string][]models.RemoteItem{
			"pl1": {
				tu.TrackItem("trk1", "Blue Monday", "New Order", "1983-03-07", ""),
				tu.TrackItem("trk2", "Age of Consent", "New Order", "1983-05-02", ""),
			},
			"pl2": {
				tu.TrackItem("trk3", "Atmosphere", "Joy Division", "1980", ""),
			},
		},
	}
}

func writeTargets(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "playlists.toml")
	content := `[[playlist]]
id = "faves"
playlist_url = "https://open.spotify.com/playlist/pl1"

[[playlist]]
id = "postpunk"
playlist_url = "pl2"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write targets file: %v", err)
	}
	return path
}

func TestSyncCommand(t *testing.T) {
	t.Run("syncs all targets and writes sheets", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)
		dataDir := filepath.Join(dir, "data")

		svc := testService()
		app, output := testApp(svc)

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", dataDir})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dataDir, "faves.csv"))
		tu.AssertFileExists(t, filepath.Join(dataDir, "postpunk.csv"))

		if len(svc.Fetched) != 2 || svc.Fetched[0] != "pl1" || svc.Fetched[1] != "pl2" {
			t.Errorf("fetched playlists = %v, want [pl1 pl2]", svc.Fetched)
		}

		result := output.String()
		for _, want := range []string{
			"[1/2] faves (tracks)",
			"Fetched 2 items",
			"Sync Complete!",
			"Rows written: 3",
		} {
			if !strings.Contains(result, want) {
				t.Errorf("output missing %q\ngot:\n%s", want, result)
			}
		}
	})

	t.Run("reads config from the default path", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		writeTargets(t, dir)

		content := `[sync]
data_dir = "sheets"
targets_file = "playlists.toml"
`
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, dir)
		defer tu.MustChdir(t, originalDir)

		app, _ := testApp(testService())

		if err := app.Run(context.Background(), []string{"cratesync", "sync"}); err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "sheets", "faves.csv"))
		tu.AssertFileExists(t, filepath.Join(dir, "sheets", "postpunk.csv"))
	})

	t.Run("target flag selects a single target", func(t *testing.T) {
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)
		dataDir := filepath.Join(dir, "data")

		svc := testService()
		app, _ := testApp(svc)

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", dataDir, "--target", "postpunk"})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if len(svc.Fetched) != 1 || svc.Fetched[0] != "pl2" {
			t.Errorf("fetched playlists = %v, want [pl2]", svc.Fetched)
		}
		if _, err := os.Stat(filepath.Join(dataDir, "faves.csv")); !os.IsNotExist(err) {
			t.Error("unselected target must not be written")
		}
	})

	t.Run("selector falls back to the environment", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "faves")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		svc := testService()
		app, _ := testApp(svc)

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", filepath.Join(dir, "data")})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if len(svc.Fetched) != 1 || svc.Fetched[0] != "pl1" {
			t.Errorf("fetched playlists = %v, want [pl1]", svc.Fetched)
		}
	})

	t.Run("target flag wins over the environment", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "faves")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		svc := testService()
		app, _ := testApp(svc)

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", filepath.Join(dir, "data"), "--target", "postpunk"})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if len(svc.Fetched) != 1 || svc.Fetched[0] != "pl2" {
			t.Errorf("fetched playlists = %v, want [pl2]", svc.Fetched)
		}
	})

	t.Run("unknown target fails with available ids", func(t *testing.T) {
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		app, _ := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--target", "nope"})
		if err == nil {
			t.Fatal("expected error for unknown target")
		}
		if !strings.Contains(err.Error(), "unknown target") || !strings.Contains(err.Error(), "faves, postpunk") {
			t.Errorf("expected unknown target error listing ids, got: %v", err)
		}
	})

	t.Run("missing targets file fails", func(t *testing.T) {
		app, _ := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", filepath.Join(t.TempDir(), "absent.toml")})
		if err == nil {
			t.Fatal("expected error for missing targets file")
		}
		if !strings.Contains(err.Error(), "targets file") {
			t.Errorf("expected targets file error, got: %v", err)
		}
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)
		dataDir := filepath.Join(dir, "data")

		app, output := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", dataDir, "--dry-run"})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
			t.Error("dry run must not create the data directory")
		}
		if !strings.Contains(output.String(), "Dry run: no sheets were written") {
			t.Errorf("expected dry run notice, got:\n%s", output.String())
		}
	})

	t.Run("report flag writes a JSON report", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)
		reportPath := filepath.Join(dir, "report.json")

		app, _ := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", filepath.Join(dir, "data"), "--report", reportPath})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		report := tu.MustReadFile(t, reportPath)
		if !strings.Contains(report, "\"run_id\"") || !strings.Contains(report, "\"postpunk\"") {
			t.Errorf("report missing run data, got:\n%s", report)
		}
	})

	t.Run("json flag prints the run result", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		app, output := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath, "--data-dir", filepath.Join(dir, "data"), "--json"})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "\"run_id\"") || !strings.Contains(result, "\"targets\"") {
			t.Errorf("expected JSON run result, got:\n%s", result)
		}
		if strings.Contains(result, "Sync Complete!") {
			t.Error("json mode should not print the plain summary")
		}
	})

	t.Run("missing credentials fail before fetching", func(t *testing.T) {
		t.Setenv(shared.EnvClientID, "")
		t.Setenv(shared.EnvClientSecret, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		})
		app := &cli.Command{Name: "cratesync", Commands: runner.register()}

		err := app.Run(context.Background(), []string{"cratesync", "sync", "--targets", targetsPath})
		if err == nil {
			t.Fatal("expected error without credentials")
		}
		if !strings.Contains(err.Error(), "missing credentials") {
			t.Errorf("expected credentials error, got: %v", err)
		}
	})
}

func TestTargetsListCommand(t *testing.T) {
	t.Run("lists targets with sheet paths", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		app, output := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "targets", "list", "--targets", targetsPath, "--data-dir", "data"})
		if err != nil {
			t.Fatalf("targets list failed: %v", err)
		}

		result := output.String()
		for _, want := range []string{
			"Configured targets (2):",
			"faves (tracks)",
			"playlist: https://open.spotify.com/playlist/pl1",
			"sheet: " + filepath.Join("data", "postpunk.csv"),
		} {
			if !strings.Contains(result, want) {
				t.Errorf("output missing %q\ngot:\n%s", want, result)
			}
		}
	})

	t.Run("json mode emits the target list", func(t *testing.T) {
		t.Setenv(shared.EnvSelector, "")
		dir := t.TempDir()
		targetsPath := writeTargets(t, dir)

		app, output := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "targets", "list", "--targets", targetsPath, "--json"})
		if err != nil {
			t.Fatalf("targets list failed: %v", err)
		}

		var targets []models.Target
		if err := json.Unmarshal(output.Bytes(), &targets); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(targets) != 2 || targets[0].ID != "faves" {
			t.Errorf("decoded targets = %+v, want the configured pair", targets)
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	t.Run("scaffolds config and targets files", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		targetsPath := filepath.Join(dir, "playlists.toml")

		app, output := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "config", "init", "--config", configPath, "--targets", targetsPath})
		if err != nil {
			t.Fatalf("config init failed: %v", err)
		}

		tu.AssertFileExists(t, configPath)
		tu.AssertFileExists(t, targetsPath)

		if _, err := shared.LoadConfig(configPath); err != nil {
			t.Errorf("created config does not parse: %v", err)
		}
		targets, err := shared.LoadTargets(targetsPath)
		if err != nil {
			t.Fatalf("created targets file does not parse: %v", err)
		}
		if len(targets) != 1 || targets[0].ID != "faves" {
			t.Errorf("starter targets = %+v, want the example entry", targets)
		}

		if !strings.Contains(output.String(), "Next steps:") {
			t.Error("expected next steps guidance")
		}
	})

	t.Run("keeps an existing targets file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		targetsPath := writeTargets(t, dir)

		app, _ := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "config", "init", "--config", configPath, "--targets", targetsPath})
		if err != nil {
			t.Fatalf("config init failed: %v", err)
		}

		targets, err := shared.LoadTargets(targetsPath)
		if err != nil {
			t.Fatalf("targets file no longer parses: %v", err)
		}
		if len(targets) != 2 {
			t.Errorf("existing targets file was replaced, got %d targets", len(targets))
		}
	})

	t.Run("refuses to overwrite config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(configPath, []byte("[spotify]\n"), 0644); err != nil {
			t.Fatal(err)
		}

		app, _ := testApp(testService())

		err := app.Run(context.Background(), []string{"cratesync", "config", "init", "--config", configPath})
		if err == nil {
			t.Fatal("expected error for existing config")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already exists error, got: %v", err)
		}
	})
}
