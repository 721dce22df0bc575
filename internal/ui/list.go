package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cratesync/cratesync/internal/models"
)

var (
	_ list.Item = targetItem{}
)

// targetItem wraps [models.Target] to implement [list.Item].
type targetItem struct {
	target models.Target
}

func (i targetItem) FilterValue() string { return i.target.ID }
func (i targetItem) Title() string       { return i.target.ID }
func (i targetItem) Description() string {
	return fmt.Sprintf("%s • %s", i.target.Collection(), i.target.PlaylistURL)
}
