// package tasks implements the playlist-to-sheet sync pipeline.
//
// The core abstraction is SyncEngine, which rebuilds each configured
// target's CSV sheet from a fresh provider fetch while preserving the
// curator's override columns. Operations emit progress updates via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/services"
	"github.com/cratesync/cratesync/internal/shared"
	"github.com/cratesync/cratesync/internal/sheet"
)

// SyncOpts contains configuration for a sync run.
type SyncOpts struct {
	DataDir string // Sheet output directory (default: data)
	DryRun  bool   // Run the full pipeline but skip the sheet writes
}

// TargetResult records what one target's sync produced.
type TargetResult struct {
	TargetID   string `json:"target_id"`
	PlaylistID string `json:"playlist_id"`
	Type       string `json:"type"`
	Fetched    int    `json:"fetched"`   // items returned by the provider
	Overrides  int    `json:"overrides"` // override entries loaded from the previous sheet
	Preserved  int    `json:"preserved"` // rows an override was applied to
	Written    int    `json:"written"`   // rows in the replaced sheet
	SheetPath  string `json:"sheet_path"`
}

// RunResult contains all data from a full sync run.
type RunResult struct {
	RunID   string         `json:"run_id"`
	Service string         `json:"service"`
	DryRun  bool           `json:"dry_run,omitempty"`
	Targets []TargetResult `json:"targets"`
}

// WriteReport serializes the run result as indented JSON at path.
func (r *RunResult) WriteReport(path string) error {
	data, err := shared.MarshalJSON(r, true)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	return nil
}

// SyncEngine defines operations for syncing playlists into sheets.
type SyncEngine interface {
	// Run syncs the given targets in order, aborting on the first failure.
	Run(ctx context.Context, progress chan<- ProgressUpdate, targets []models.Target, opts SyncOpts) (*RunResult, error)
}

// SheetEngine implements SyncEngine against a single provider service.
type SheetEngine struct {
	service services.Service
}

// NewSheetEngine creates a SheetEngine backed by the provided service.
func NewSheetEngine(service services.Service) *SheetEngine {
	return &SheetEngine{service: service}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SheetEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run authenticates once, then processes the targets sequentially. Each
// target goes through the same pipeline: parse the playlist reference,
// fetch every item, load the previous sheet's overrides, rebuild rows,
// merge, and replace the sheet. The first failure aborts the run and leaves
// the remaining targets untouched.
func (e *SheetEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, targets []models.Target, opts SyncOpts) (*RunResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: provider service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.DataDir == "" {
		opts.DataDir = "data"
	}

	result := &RunResult{
		RunID:   shared.GenerateID(),
		Service: e.service.Name(),
		DryRun:  opts.DryRun,
		Targets: make([]TargetResult, 0, len(targets)),
	}

	total := len(targets)
	e.sendProgress(progress, authenticateUpdate(total))
	if err := e.service.Authenticate(ctx); err != nil {
		return nil, err
	}

	for i, target := range targets {
		step := i + 1
		res, err := e.syncOne(ctx, progress, target, step, total, opts)
		if err != nil {
			e.sendProgress(progress, targetFailedUpdate(step, total, target.ID, err))
			return result, fmt.Errorf("target %s: %w", target.ID, err)
		}

		result.Targets = append(result.Targets, res)
		e.sendProgress(progress, targetDoneUpdate(step, total, res))
	}

	return result, nil
}

// syncOne runs the pipeline for a single target.
func (e *SheetEngine) syncOne(ctx context.Context, progress chan<- ProgressUpdate, target models.Target, step, total int, opts SyncOpts) (TargetResult, error) {
	res := TargetResult{
		TargetID:  target.ID,
		Type:      string(target.Collection()),
		SheetPath: sheet.PathFor(opts.DataDir, target.ID),
	}

	e.sendProgress(progress, targetStartUpdate(step, total, target))

	playlistID, err := services.ParsePlaylistRef(target.PlaylistURL)
	if err != nil {
		return res, err
	}
	res.PlaylistID = playlistID

	items, err := e.service.PlaylistItems(ctx, playlistID)
	if err != nil {
		return res, err
	}
	res.Fetched = len(items)
	e.sendProgress(progress, fetchedItemsUpdate(step, total, len(items)))

	overrides, err := sheet.LoadOverrides(res.SheetPath)
	if err != nil {
		return res, err
	}
	res.Overrides = len(overrides)
	e.sendProgress(progress, overridesUpdate(step, total, len(overrides)))

	rows := BuildRows(items, target)
	res.Preserved = MergeOverrides(rows, overrides)
	e.sendProgress(progress, mergedRowsUpdate(step, total, res.Preserved, len(rows)))

	if !opts.DryRun {
		if err := sheet.Write(res.SheetPath, rows); err != nil {
			return res, err
		}
	}
	res.Written = len(rows)
	e.sendProgress(progress, writtenSheetUpdate(step, total, len(rows), res.SheetPath, opts.DryRun))

	return res, nil
}
