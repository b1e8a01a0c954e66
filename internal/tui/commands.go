package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
	"github.com/bssshyamsundhar/float-chat/internal/export"
	"github.com/bssshyamsundhar/float-chat/internal/queryapi"
)

// copiedFlashDuration is how long the copied-to-clipboard marker stays
// on a message.
const copiedFlashDuration = 2 * time.Second

const healthPollInterval = 30 * time.Second

type queryResultMsg struct{ resp *queryapi.QueryResponse }

type healthMsg struct {
	data *queryapi.HealthResponse
	// announce surfaces the result as a notice instead of only updating
	// the status bar, for when the user asked explicitly.
	announce bool
}

type conversationsMsg struct{ ids []string }

type conversationMsg struct {
	id   string
	msgs []chat.Message
}

type exportedMsg struct{ path string }

type copiedMsg struct{ id string }

type copyExpiredMsg struct{ seq int }

type noticeExpiredMsg struct{ seq int }

type healthTickMsg time.Time

type errMsg struct {
	err    error
	source string
}

func queryCmd(client *queryapi.Client, req queryapi.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), req)
		if err != nil {
			return errMsg{err: err, source: "query"}
		}
		return queryResultMsg{resp}
	}
}

func healthCmd(client *queryapi.Client, announce bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Health(context.Background())
		if err != nil {
			return errMsg{err: err, source: "health"}
		}
		return healthMsg{data: resp, announce: announce}
	}
}

func conversationsCmd(client *queryapi.Client) tea.Cmd {
	return func() tea.Msg {
		ids, err := client.Conversations(context.Background())
		if err != nil {
			return errMsg{err: err, source: "history"}
		}
		return conversationsMsg{ids}
	}
}

func conversationCmd(client *queryapi.Client, id string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := client.Conversation(context.Background(), id)
		if err != nil {
			return errMsg{err: err, source: "history"}
		}
		return conversationMsg{id: id, msgs: msgs}
	}
}

func exportCmd(dir string, columns []string, rows []map[string]any) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, columns, rows)
		if err != nil {
			return errMsg{err: err, source: "export"}
		}
		return exportedMsg{path}
	}
}

func copySQLCmd(id, sql string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(sql); err != nil {
			return errMsg{err: err, source: "clipboard"}
		}
		return copiedMsg{id: id}
	}
}

func copyExpireCmd(seq int) tea.Cmd {
	return tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copyExpiredMsg{seq: seq}
	})
}

func noticeExpireCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func healthTickCmd() tea.Cmd {
	return tea.Tick(healthPollInterval, func(t time.Time) tea.Msg {
		return healthTickMsg(t)
	})
}
