package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TargetListView ViewState = iota
	ConfirmView
	SyncView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.SyncEngine
	opts         tasks.SyncOpts
	width        int
	height       int
	targetList   list.Model
	targets      []models.Target
	selected     []models.Target
	progressChan chan tasks.ProgressUpdate
	doneChan     chan syncOutcome
	progress     tasks.ProgressUpdate
	result       *tasks.RunResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model over the configured targets.
func NewModel(ctx context.Context, engine tasks.SyncEngine, targets []models.Target, opts tasks.SyncOpts) *Model {
	items := make([]list.Item, len(targets))
	for i, target := range targets {
		items[i] = targetItem{target: target}
	}
	targetList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	targetList.Title = "Sync Targets"

	return &Model{
		ctx:        ctx,
		view:       TargetListView,
		engine:     engine,
		opts:       opts,
		targetList: targetList,
		targets:    targets,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init satisfies tea.Model. Targets are loaded before the program starts,
// so there is nothing to kick off.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.targetList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TargetListView:
			return m.handleTargetListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case syncCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.doneChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case TargetListView:
		return m.renderTargetList()
	case ConfirmView:
		return m.renderConfirm()
	case SyncView:
		return m.renderSync()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTargetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		if len(m.targets) > 0 {
			m.selected = m.targets
			m.view = ConfirmView
		}
		return m, nil
	case "enter":
		selected := m.targetList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(targetItem); ok {
				m.selected = []models.Target{item.target}
				m.view = ConfirmView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.targetList, cmd = m.targetList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.selected = nil
		m.view = TargetListView
		return m, nil
	case "y":
		m.view = SyncView
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = TargetListView
		m.selected = nil
		m.progress = tasks.ProgressUpdate{}
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == TargetListView {
		m.targetList, cmd = m.targetList.Update(msg)
	}
	return m, cmd
}

// startSync launches the engine in a goroutine. The goroutine owns the
// progress channel and closes it when the run finishes; the final outcome
// travels through doneChan so Update stays the only writer of model fields.
func (m *Model) startSync() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.doneChan = make(chan syncOutcome, 1)

	go func(progress chan tasks.ProgressUpdate, done chan<- syncOutcome) {
		result, err := m.engine.Run(m.ctx, progress, m.selected, m.opts)
		close(progress)
		done <- syncOutcome{result: result, err: err}
	}(m.progressChan, m.doneChan)

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	done := m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return syncCompleteMsg{}
		}

		update, ok := <-progress
		if !ok {
			outcome := <-done
			return syncCompleteMsg{result: outcome.result, err: outcome.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderTargetList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.all, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.targetList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Sync %d target(s) from Spotify?", len(m.selected)))

	var info strings.Builder
	for _, target := range m.selected {
		fmt.Fprintf(&info, "\n%s (%s)\n  %s\n", target.ID, target.Collection(), target.PlaylistURL)
	}
	if m.opts.DryRun {
		info.WriteString("\n")
		info.WriteString(styles.warn.Render("Dry run: sheets will not be written"))
		info.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info.String(), helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Playlists")

	var phase string
	switch m.progress.Phase {
	case tasks.Authenticate:
		phase = "Authenticating with Spotify..."
	case tasks.TargetStart, tasks.FetchItems, tasks.LoadOverrides, tasks.MergeRows, tasks.WriteSheet:
		phase = fmt.Sprintf("Target %d of %d", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Sync Complete!")

	var info strings.Builder
	for _, res := range m.result.Targets {
		fmt.Fprintf(&info, "\n%s: %d rows -> %s", res.TargetID, res.Written, res.SheetPath)
		if res.Preserved > 0 {
			fmt.Fprintf(&info, " (%d override(s) preserved)", res.Preserved)
		}
	}
	if m.result.DryRun {
		info.WriteString("\n\n")
		info.WriteString(styles.warn.Render("Dry run: no sheets were written"))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info.String(), helpView)
}
