// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for sheet syncing:
//  1. [TargetListView] : Browse the configured sync targets
//  2. [ConfirmView] : Review the selection before syncing
//  3. [SyncView] : Monitor real-time progress updates
//  4. [ResultView] : Display per-target row counts and sheet paths
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the sync engine, providing non-blocking
// status reporting while sheets are rebuilt.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
