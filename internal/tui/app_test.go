package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
	"github.com/bssshyamsundhar/float-chat/internal/config"
	"github.com/bssshyamsundhar/float-chat/internal/queryapi"
	"github.com/bssshyamsundhar/float-chat/internal/settings"
	"github.com/bssshyamsundhar/float-chat/internal/table"
	"github.com/bssshyamsundhar/float-chat/internal/utils"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := &config.Config{
		ServerURL: "http://localhost:8000",
		Timeout:   time.Second,
		PageSize:  10,
		Welcome:   "welcome aboard",
	}
	logger, err := utils.NewLogger("info", "")
	require.NoError(t, err)
	client := queryapi.New(cfg.ServerURL, cfg.Timeout)
	return newModel(cfg, logger, client, nil, nil)
}

func rowsResponse(convID string, n int) *queryapi.QueryResponse {
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, map[string]any{"n": float64(i)})
	}
	return &queryapi.QueryResponse{
		Response:       "✅ **Query executed successfully!**",
		SQLQuery:       "SELECT n FROM t LIMIT 500;",
		Data:           queryapi.RowSet{Columns: []string{"n"}, Records: records},
		ConversationID: convID,
		MessageType:    "bot",
	}
}

func clarificationMessage(sql string) chat.Message {
	msg := chat.NewMessage(chat.RoleSystem, "🤔 Your query might need clarification")
	msg.SQL = sql
	msg.NeedsClarification = true
	return msg
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSubmitAppendsUserTurnAndHoldsTheGate(t *testing.T) {
	m := newTestModel(t)
	m.msgInput.SetValue("show me floats near the equator")

	cmd := m.submitQuestion()
	require.NotNil(t, cmd)
	assert.True(t, m.session.Pending())
	assert.Equal(t, 2, m.session.Len())
	last, _ := m.session.Last()
	assert.Equal(t, chat.RoleUser, last.Role)
	assert.Equal(t, "show me floats near the equator", last.Body)
	assert.Empty(t, m.msgInput.Value())

	// A second submit while the first is in flight never reaches the wire.
	m.msgInput.SetValue("another question")
	_ = m.submitQuestion()
	assert.Equal(t, 2, m.session.Len())
	assert.NotEmpty(t, m.notice)
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	m := newTestModel(t)
	m.msgInput.SetValue("   \n  ")
	assert.Nil(t, m.submitQuestion())
	assert.False(t, m.session.Pending())
	assert.Equal(t, 1, m.session.Len())
}

func TestQueryResultReleasesGateAndLoadsRows(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.session.BeginRequest())

	updated, cmd := m.handleQueryResult(rowsResponse("conv-9", 3))
	m2 := updated.(model)

	assert.False(t, m2.session.Pending())
	assert.Equal(t, "conv-9", m2.session.ConversationID())
	last, _ := m2.session.Last()
	assert.Equal(t, chat.RoleAssistant, last.Role)
	require.NotNil(t, m2.results)
	assert.Equal(t, 3, m2.results.FilteredLen())
	assert.NotEmpty(t, m2.notice)
	assert.NotNil(t, cmd)
}

func TestQueryErrorAppendsErrorTurn(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.session.BeginRequest())

	updated, cmd := m.handleError(errMsg{err: errors.New("dial tcp: connection refused"), source: "query"})
	m2 := updated.(model)

	assert.False(t, m2.session.Pending())
	last, _ := m2.session.Last()
	assert.Equal(t, chat.RoleError, last.Role)
	assert.Contains(t, last.Body, "connection refused")
	assert.NotEmpty(t, m2.notice)
	assert.NotNil(t, cmd)
}

func TestOverrideRequestUsesLatestUserQuestion(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "find whales"))
	m.session.Append(clarificationMessage("SELECT * FROM profiles LIMIT 500;"))
	m.session.AdoptConversationID("conv-1")

	req, problem := m.overrideRequest()
	require.Empty(t, problem)
	assert.Equal(t, "find whales", req.Question)
	assert.True(t, req.Override)
	assert.Equal(t, "SELECT * FROM profiles LIMIT 500;", req.SQLQuery)
	assert.Equal(t, "conv-1", req.ConversationID)
}

func TestOverrideRequestNeedsAClarification(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "find whales"))

	_, problem := m.overrideRequest()
	assert.NotEmpty(t, problem)
}

func TestRunAnywayHoldsTheGate(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "find whales"))
	m.session.Append(clarificationMessage("SELECT 1;"))

	require.NotNil(t, m.runAnyway())
	assert.True(t, m.session.Pending())

	// While pending, a second run-anyway only produces a notice.
	m.notice = ""
	_ = m.runAnyway()
	assert.NotEmpty(t, m.notice)
}

func TestRefinePrefillsComposerWithLastQuestion(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "find whales"))
	m.session.Append(clarificationMessage("SELECT 1;"))

	_ = m.refine()
	assert.Equal(t, "find whales", m.msgInput.Value())
}

func TestRefineWithoutClarificationOnlyNotices(t *testing.T) {
	m := newTestModel(t)
	_ = m.refine()
	assert.Empty(t, m.msgInput.Value())
	assert.NotEmpty(t, m.notice)
}

func TestClearResetsConversationAndResults(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "q"))
	m.session.AdoptConversationID("conv-1")
	m.results = table.New([]string{"n"}, []map[string]any{{"n": 1.0}}, 10)

	_ = m.clearConversation()

	assert.Equal(t, 1, m.session.Len())
	assert.Empty(t, m.session.ConversationID())
	assert.Nil(t, m.results)
	last, _ := m.session.Last()
	assert.Equal(t, chat.RoleSystem, last.Role)
	assert.Equal(t, "welcome aboard", last.Body)
}

func TestCopiedMarkerExpiresBySequence(t *testing.T) {
	m := newTestModel(t)
	m.copiedID = "msg-1"
	m.copySeq = 2

	updated, _ := m.Update(copyExpiredMsg{seq: 1})
	m2 := updated.(model)
	assert.Equal(t, "msg-1", m2.copiedID, "stale expiry must not clear a newer copy")

	updated, _ = m2.Update(copyExpiredMsg{seq: 2})
	m3 := updated.(model)
	assert.Empty(t, m3.copiedID)
}

func TestToggleColumnByIndex(t *testing.T) {
	m := newTestModel(t)
	rows := []map[string]any{{"a": 1.0, "b": "x"}}
	m.results = table.New([]string{"a", "b"}, rows, 10)
	m.rebuildResultsGrid()

	require.True(t, m.toggleColumnByIndex(2))
	assert.Equal(t, []string{"a"}, m.results.VisibleColumns())

	require.True(t, m.toggleColumnByIndex(2))
	assert.Equal(t, []string{"a", "b"}, m.results.VisibleColumns())

	assert.False(t, m.toggleColumnByIndex(3))
	assert.False(t, m.toggleColumnByIndex(0))
}

func TestApplyCommandSwitchesViews(t *testing.T) {
	m := newTestModel(t)

	_ = m.applyCommand("/results")
	assert.Equal(t, viewResults, m.activeView)

	_ = m.applyCommand("/chat")
	assert.Equal(t, viewChat, m.activeView)

	_ = m.applyCommand("/nonsense")
	assert.Contains(t, m.notice, "unknown command")
}

func TestHandleConversationLoadedRestoresSessionAndRows(t *testing.T) {
	m := newTestModel(t)
	m.activeView = viewHistory

	bot := chat.NewMessage(chat.RoleAssistant, "✅ done")
	bot.Columns = []string{"n"}
	bot.Rows = []chat.Record{{"n": 1.0}}
	msgs := []chat.Message{chat.NewMessage(chat.RoleUser, "show floats"), bot}

	updated, _ := m.handleConversationLoaded(conversationMsg{id: "conv-7", msgs: msgs})
	m2 := updated.(model)

	assert.Equal(t, viewChat, m2.activeView)
	assert.Equal(t, "conv-7", m2.session.ConversationID())
	assert.Equal(t, 2, m2.session.Len())
	require.NotNil(t, m2.results)
	assert.Equal(t, 1, m2.results.Len())
}

func TestConversationLoadedIgnoredWhileQueryPending(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.session.BeginRequest())

	msgs := []chat.Message{chat.NewMessage(chat.RoleUser, "show floats")}
	updated, cmd := m.handleConversationLoaded(conversationMsg{id: "conv-7", msgs: msgs})
	m2 := updated.(model)

	assert.True(t, m2.session.Pending())
	assert.Empty(t, m2.session.ConversationID())
	assert.Equal(t, 1, m2.session.Len())
	assert.NotEmpty(t, m2.notice)
	assert.NotNil(t, cmd)
}

func TestHistoryEnterWhilePendingOnlyNotices(t *testing.T) {
	m := newTestModel(t)
	m.activeView = viewHistory
	m.historyList.SetItems(buildConversationItems([]string{"conv-1"}))
	require.True(t, m.session.BeginRequest())

	updated, _ := m.handleHistoryKey(keyMsg("enter"))
	m2 := updated.(model)
	assert.NotEmpty(t, m2.notice)
}

func TestExportResultsWritesCSV(t *testing.T) {
	m := newTestModel(t)
	m.cfg.ExportDir = t.TempDir()
	m.results = table.New([]string{"n"}, []map[string]any{{"n": 1.0}}, 10)

	cmd := m.exportResults()
	require.NotNil(t, cmd)
	msg := cmd()
	exported, ok := msg.(exportedMsg)
	require.True(t, ok, "expected exportedMsg, got %T", msg)

	data, err := os.ReadFile(exported.path)
	require.NoError(t, err)
	assert.Equal(t, "\"n\"\n\"1\"\n", string(data))
}

func TestExportWithoutResultsOnlyNotices(t *testing.T) {
	m := newTestModel(t)
	assert.NotNil(t, m.exportResults())
	assert.NotEmpty(t, m.notice)
}

func TestChatLogAttachesHintsToLatestClarificationOnly(t *testing.T) {
	m := newTestModel(t)
	m.session.Append(chat.NewMessage(chat.RoleUser, "one"))
	m.session.Append(clarificationMessage("SELECT 1;"))
	m.session.Append(chat.NewMessage(chat.RoleUser, "two"))
	m.session.Append(clarificationMessage("SELECT 2;"))

	plain := ansi.Strip(strings.Join(m.chatLogLines(80), "\n"))
	assert.Equal(t, 1, strings.Count(plain, "ctrl+r run as-is"))
}

func TestChatLogShowsRowCountHint(t *testing.T) {
	m := newTestModel(t)
	bot := chat.NewMessage(chat.RoleAssistant, "✅ done")
	bot.Columns = []string{"n"}
	bot.Rows = []chat.Record{{"n": 1.0}, {"n": 2.0}}
	m.session.Append(bot)

	plain := ansi.Strip(strings.Join(m.chatLogLines(80), "\n"))
	assert.Contains(t, plain, "2 rows")
}

func TestChatLogPreviewsFirstRowsOnly(t *testing.T) {
	m := newTestModel(t)
	bot := chat.NewMessage(chat.RoleAssistant, "✅ done")
	bot.Columns = []string{"n"}
	bot.Rows = []chat.Record{{"n": 1.0}, {"n": 2.0}, {"n": 3.0}, {"n": 4.0}}
	m.session.Append(bot)

	plain := ansi.Strip(strings.Join(m.chatLogLines(80), "\n"))
	assert.Contains(t, plain, "n=1")
	assert.Contains(t, plain, "n=3")
	assert.NotContains(t, plain, "n=4")
}

func TestQueryResultRecordsLastConversation(t *testing.T) {
	m := newTestModel(t)
	store, err := settings.Open(t.TempDir())
	require.NoError(t, err)
	m.store = store
	require.True(t, m.session.BeginRequest())

	_, _ = m.handleQueryResult(rowsResponse("conv-11", 1))
	assert.Equal(t, "conv-11", store.LastConversation())
}

func TestResumeWithoutStoredConversationOnlyNotices(t *testing.T) {
	m := newTestModel(t)
	assert.NotNil(t, m.applyCommand("/resume"))
	assert.Contains(t, m.notice, "no previous conversation")
}

func TestEscLeavesResultsForChat(t *testing.T) {
	m := newTestModel(t)
	m.activeView = viewResults

	updated, _ := m.handleKey(keyMsg("esc"))
	assert.Equal(t, viewChat, updated.(model).activeView)
}

func TestStatusBarShowsRowCount(t *testing.T) {
	m := newTestModel(t)
	m.results = table.New([]string{"n"}, []map[string]any{{"n": 1.0}, {"n": 2.0}, {"n": 3.0}}, 10)

	bar := ansi.Strip(m.renderStatusBar())
	assert.Contains(t, bar, "3 rows")
}
