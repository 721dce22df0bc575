package tasks

import (
	"fmt"

	"github.com/cratesync/cratesync/internal/models"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Target number within the run (1-based, 0 for run-wide events)
	Total   int    // Total targets in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Authenticate Phase = iota
	TargetStart
	FetchItems
	LoadOverrides
	MergeRows
	WriteSheet
	TargetDone
)

func (p Phase) String() string {
	switch p {
	case Authenticate:
		return "authenticate"
	case TargetStart:
		return "target_start"
	case FetchItems:
		return "fetch_items"
	case LoadOverrides:
		return "load_overrides"
	case MergeRows:
		return "merge_rows"
	case WriteSheet:
		return "write_sheet"
	case TargetDone:
		return "target_done"
	default:
		return ""
	}
}

func authenticateUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authenticate,
		Step:    0,
		Total:   total,
		Message: "Authenticating with Spotify...",
	}
}

func targetStartUpdate(step, total int, target models.Target) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TargetStart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s (%s)", step, total, target.ID, target.Collection()),
		Data:    target,
	}
}

func fetchedItemsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched %d items", count),
	}
}

func overridesUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadOverrides,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Preserving %d override(s)", count),
	}
}

func mergedRowsUpdate(step, total, matched, rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MergeRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Merged overrides into %d of %d rows", matched, rows),
	}
}

func writtenSheetUpdate(step, total, rows int, path string, dryRun bool) ProgressUpdate {
	message := fmt.Sprintf("Written %d rows -> %s", rows, path)
	if dryRun {
		message = fmt.Sprintf("Would write %d rows -> %s", rows, path)
	}
	return ProgressUpdate{
		Phase:   WriteSheet,
		Step:    step,
		Total:   total,
		Message: message,
	}
}

func targetDoneUpdate(step, total int, res TargetResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TargetDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.TargetID),
		Data:    res,
	}
}

func targetFailedUpdate(step, total int, targetID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TargetDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, targetID, err),
	}
}
