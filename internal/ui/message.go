package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratesync/cratesync/internal/tasks"
)

var (
	_ tea.Msg = progressUpdateMsg{}
	_ tea.Msg = syncCompleteMsg{}
)

// progressUpdateMsg delivers one engine progress event to the TUI loop.
type progressUpdateMsg tasks.ProgressUpdate

// syncCompleteMsg signals that the engine run finished.
type syncCompleteMsg struct {
	result *tasks.RunResult
	err    error
}

// syncOutcome carries the engine's return values out of the worker goroutine
// so model fields are only ever written inside Update.
type syncOutcome struct {
	result *tasks.RunResult
	err    error
}
