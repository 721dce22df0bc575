package shared

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cratesync/cratesync/internal/models"
)

//go:embed playlists.example.toml
var exampleTargets []byte

// targetsFile mirrors the [[playlist]] array in a TOML targets file.
type targetsFile struct {
	Playlists []models.Target `toml:"playlist"`
}

// CreateTargetsFile creates a starter targets file at the specified path using the embedded example.
func CreateTargetsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("targets file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleTargets, 0644); err != nil {
		return fmt.Errorf("failed to write targets file: %w", err)
	}

	return nil
}

// LoadTargets reads the playlists to sync from path. A TOML file holds an
// array of [[playlist]] tables; a .json path is parsed as a plain list of
// target objects. Order in the file is the order targets sync in.
func LoadTargets(path string) ([]models.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: targets file %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var targets []models.Target
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &targets); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	} else {
		var tf targetsFile
		if err := toml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		targets = tf.Playlists
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no targets in %s", ErrInvalidConfig, path)
	}

	seen := make(map[string]bool, len(targets))
	for _, target := range targets {
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if seen[target.ID] {
			return nil, fmt.Errorf("%w: duplicate target id %q", ErrInvalidConfig, target.ID)
		}
		seen[target.ID] = true
	}

	return targets, nil
}

// SelectTargets filters targets by selector. "all" or an empty selector
// keeps every target; otherwise the selector must match a configured id.
// An unknown selector errors with the available ids listed.
func SelectTargets(targets []models.Target, selector string) ([]models.Target, error) {
	if selector == "" || selector == "all" {
		return targets, nil
	}

	for _, target := range targets {
		if target.ID == selector {
			return []models.Target{target}, nil
		}
	}

	ids := make([]string, 0, len(targets))
	for _, target := range targets {
		ids = append(ids, target.ID)
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTarget, selector, strings.Join(ids, ", "))
}
