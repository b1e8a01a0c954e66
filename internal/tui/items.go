package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

type conversationItem struct {
	id string
}

func (i conversationItem) Title() string       { return shortID(i.id) }
func (i conversationItem) Description() string { return i.id }
func (i conversationItem) FilterValue() string { return i.id }

func buildConversationItems(ids []string) []list.Item {
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, conversationItem{id: id})
	}
	return items
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func previewText(text string, limit int) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
