// Package tui is the terminal front end: a chat view for asking
// questions, a results view for the rows they return, and a history
// view for picking up stored conversations.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
	"github.com/bssshyamsundhar/float-chat/internal/config"
	"github.com/bssshyamsundhar/float-chat/internal/queryapi"
	"github.com/bssshyamsundhar/float-chat/internal/settings"
	"github.com/bssshyamsundhar/float-chat/internal/table"
	"github.com/bssshyamsundhar/float-chat/internal/transcript"
	"github.com/bssshyamsundhar/float-chat/internal/utils"
)

const (
	viewChat = iota
	viewResults
	viewHistory
	viewCount
)

type model struct {
	cfg        *config.Config
	logger     *utils.Logger
	client     *queryapi.Client
	session    *chat.Session
	transcript *transcript.Writer
	store      *settings.Store

	width      int
	height     int
	activeView int

	chatViewport viewport.Model
	msgInput     textarea.Model

	results     *table.Model
	resultsGrid btable.Model
	filterInput textinput.Model
	filtering   bool

	historyList   list.Model
	historyLoaded bool

	keys     keyMap
	help     help.Model
	showHelp bool

	commandMode    bool
	commandInput   textinput.Model
	commandHistory []string
	commandIndex   int
	commandResults []commandSpec

	spinner spinner.Model

	health    *queryapi.HealthResponse
	healthErr string

	copiedID string
	copySeq  int

	notice    string
	noticeSeq int
	errMsg    string

	confirmQuit    bool
	confirmMessage string

	lastUpdated time.Time
}

// Run builds the program and blocks until the user quits.
func Run(cfg *config.Config, logger *utils.Logger) error {
	client := queryapi.New(cfg.ServerURL, cfg.Timeout)
	tw, err := transcript.Open(cfg.TranscriptFile)
	if err != nil {
		return err
	}
	defer tw.Close()
	store, err := settings.Open(cfg.DataDir)
	if err != nil {
		logger.Warnf("settings: %v", err)
	}

	m := newModel(cfg, logger, client, tw, store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newModel(cfg *config.Config, logger *utils.Logger, client *queryapi.Client, tw *transcript.Writer, store *settings.Store) model {
	msgInput := textarea.New()
	msgInput.Placeholder = "Ask about floats, temperature, salinity..."
	msgInput.Focus()
	msgInput.Prompt = ""
	msgInput.ShowLineNumbers = false
	msgInput.SetHeight(3)
	msgInput.KeyMap.InsertNewline.SetKeys("shift+enter", "ctrl+j")
	msgInput.FocusedStyle.Base = msgInput.FocusedStyle.Base.Background(inputBackground)
	msgInput.BlurredStyle.Base = msgInput.BlurredStyle.Base.Background(inputBackground)
	msgInput.FocusedStyle.CursorLine = msgInput.FocusedStyle.CursorLine.Background(inputBackground)
	msgInput.BlurredStyle.CursorLine = msgInput.BlurredStyle.CursorLine.Background(inputBackground)

	filterInput := textinput.New()
	filterInput.Placeholder = "match any cell"
	filterInput.Prompt = "filter: "

	commandInput := textinput.New()
	commandInput.Placeholder = "command"
	commandInput.Prompt = "/ "

	spin := spinner.New()
	spin.Spinner = spinner.Line
	spin.Style = dimStyle

	m := model{
		cfg:          cfg,
		logger:       logger,
		client:       client,
		session:      chat.New(cfg.Welcome),
		transcript:   tw,
		store:        store,
		msgInput:     msgInput,
		filterInput:  filterInput,
		commandInput: commandInput,
		chatViewport: viewport.New(0, 0),
		resultsGrid:  newResultsGrid(),
		historyList:  newListModel(),
		keys:         defaultKeyMap,
		help:         help.New(),
		spinner:      spin,
	}
	m.syncChatViewport()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(healthCmd(m.client, false), healthTickCmd(), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		bodyW, bodyH := m.bodySize()
		m.historyList.SetSize(bodyW, bodyH)
		m.msgInput.SetWidth(bodyW - 2)
		m.syncChatViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.Pending() {
			m.syncChatViewport()
		}
		return m, cmd

	case queryResultMsg:
		return m.handleQueryResult(msg.resp)

	case errMsg:
		return m.handleError(msg)

	case healthMsg:
		m.health = msg.data
		m.healthErr = ""
		m.lastUpdated = time.Now()
		if msg.announce {
			return m, m.setNotice(healthSummary(msg.data))
		}

	case healthTickMsg:
		return m, tea.Batch(healthCmd(m.client, false), healthTickCmd())

	case conversationsMsg:
		m.historyLoaded = true
		m.historyList.SetItems(buildConversationItems(msg.ids))
		m.lastUpdated = time.Now()

	case conversationMsg:
		return m.handleConversationLoaded(msg)

	case exportedMsg:
		m.logger.Infof("exported csv: %s", msg.path)
		return m, m.setNotice("saved " + msg.path)

	case copiedMsg:
		m.copiedID = msg.id
		m.copySeq++
		m.syncChatViewport()
		return m, copyExpireCmd(m.copySeq)

	case copyExpiredMsg:
		if msg.seq == m.copySeq {
			m.copiedID = ""
			m.syncChatViewport()
		}

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleQueryResult(resp *queryapi.QueryResponse) (tea.Model, tea.Cmd) {
	m.session.EndRequest()
	m.session.AdoptConversationID(resp.ConversationID)
	m.saveLastConversation()

	entry := resp.Message()
	m.session.Append(entry)
	m.logTranscript(entry)
	m.logger.Infof("reply: role=%s clarification=%v rows=%d", entry.Role, entry.NeedsClarification, len(entry.Rows))

	m.errMsg = ""
	m.lastUpdated = time.Now()

	var cmd tea.Cmd
	if entry.HasRows() {
		m.results = table.New(entry.Columns, entry.Rows, m.cfg.PageSize)
		m.filtering = false
		m.filterInput.Reset()
		m.rebuildResultsGrid()
		cmd = m.setNotice(fmt.Sprintf("%d rows loaded · tab opens the results view", len(entry.Rows)))
	}
	m.syncChatViewport()
	return m, cmd
}

func (m model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	m.logger.Errorf("%s: %v", msg.source, msg.err)
	switch msg.source {
	case "query":
		m.session.EndRequest()
		entry := chat.NewMessage(chat.RoleError, "❌ Could not reach the query service: "+msg.err.Error())
		m.session.Append(entry)
		m.logTranscript(entry)
		m.syncChatViewport()
		return m, m.setNotice("query failed; details in the chat log")
	case "health":
		m.health = nil
		m.healthErr = msg.err.Error()
	default:
		m.errMsg = msg.err.Error()
	}
	return m, nil
}

func (m model) handleConversationLoaded(msg conversationMsg) (tea.Model, tea.Cmd) {
	// Swapping the session while a question is outstanding would route
	// the eventual reply into the restored conversation.
	if m.session.Pending() {
		return m, m.setNotice("still waiting on the previous question")
	}
	m.session = chat.Restore(msg.id, msg.msgs)
	m.saveLastConversation()
	m.results = nil
	m.filtering = false
	m.filterInput.Reset()
	if latest, ok := latestRowsMessage(msg.msgs); ok {
		m.results = table.New(latest.Columns, latest.Rows, m.cfg.PageSize)
		m.rebuildResultsGrid()
	}
	m.activeView = viewChat
	m.msgInput.Focus()
	m.errMsg = ""
	m.syncChatViewport()
	return m, m.setNotice("restored conversation " + shortID(msg.id))
}

func latestRowsMessage(msgs []chat.Message) (chat.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].HasRows() {
			return msgs[i], true
		}
	}
	return chat.Message{}, false
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		switch msg.String() {
		case "y", "enter":
			return m, tea.Quit
		default:
			m.confirmQuit = false
			return m, nil
		}
	}
	if m.commandMode {
		return m.handleCommandKey(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = true
		m.confirmMessage = "Quit? Press y or enter to leave, any other key to stay."
		return m, nil
	}
	if key.Matches(msg, m.keys.Command) {
		return m.openCommandPalette()
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if key.Matches(msg, m.keys.NextView) && !(m.activeView == viewResults && m.filtering) {
		return m, m.switchView(1)
	}
	if key.Matches(msg, m.keys.PrevView) {
		return m, m.switchView(-1)
	}

	switch m.activeView {
	case viewChat:
		return m.handleChatKey(msg)
	case viewResults:
		return m.handleResultsKey(msg)
	case viewHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitQuestion()
	case key.Matches(msg, m.keys.RunAnyway):
		return m, m.runAnyway()
	case key.Matches(msg, m.keys.Refine):
		return m, m.refine()
	case key.Matches(msg, m.keys.CopySQL):
		return m, m.copyLatestSQL()
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		msg.String() == "pgup", msg.String() == "pgdown":
		var cmd tea.Cmd
		m.chatViewport, cmd = m.chatViewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.msgInput, cmd = m.msgInput.Update(msg)
	return m, cmd
}

func (m model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc", "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		if m.results != nil && m.filterInput.Value() != m.results.Filter() {
			m.results.SetFilter(m.filterInput.Value())
			m.rebuildResultsGrid()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Filter):
		if m.results == nil {
			return m, m.setNotice("no results to filter yet")
		}
		m.filtering = true
		m.filterInput.SetValue(m.results.Filter())
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportResults()
	case key.Matches(msg, m.keys.PrevPage):
		if m.results != nil {
			m.results.PrevPage()
			m.rebuildResultsGrid()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if m.results != nil {
			m.results.NextPage()
			m.rebuildResultsGrid()
		}
		return m, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if m.toggleColumnByIndex(int(s[0] - '0')) {
			return m, nil
		}
	}
	switch msg.String() {
	case "esc":
		return m, m.setView(viewChat)
	case "q":
		m.confirmQuit = true
		m.confirmMessage = "Quit? Press y or enter to leave, any other key to stay."
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsGrid, cmd = m.resultsGrid.Update(msg)
	return m, cmd
}

func (m model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.historyList.FilterState() == list.Filtering
	if !filtering {
		switch msg.String() {
		case "enter":
			if item, ok := m.historyList.SelectedItem().(conversationItem); ok {
				if m.session.Pending() {
					return m, m.setNotice("still waiting on the previous question")
				}
				m.logger.Infof("loading conversation %s", item.id)
				return m, conversationCmd(m.client, item.id)
			}
			return m, nil
		case "esc":
			if m.historyList.FilterState() == list.Unfiltered {
				return m, m.setView(viewChat)
			}
		case "r":
			return m, conversationsCmd(m.client)
		case "q":
			m.confirmQuit = true
			m.confirmMessage = "Quit? Press y or enter to leave, any other key to stay."
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m *model) switchView(delta int) tea.Cmd {
	return m.setView((m.activeView + delta + viewCount) % viewCount)
}

func (m *model) setView(view int) tea.Cmd {
	m.activeView = view
	m.filtering = false
	m.filterInput.Blur()
	switch m.activeView {
	case viewChat:
		m.msgInput.Focus()
		m.syncChatViewport()
	case viewResults:
		m.msgInput.Blur()
		m.rebuildResultsGrid()
	case viewHistory:
		m.msgInput.Blur()
		if !m.historyLoaded {
			return conversationsCmd(m.client)
		}
	}
	return nil
}

func (m *model) submitQuestion() tea.Cmd {
	question := strings.TrimSpace(m.msgInput.Value())
	if question == "" {
		return nil
	}
	if !m.session.BeginRequest() {
		return m.setNotice("still waiting on the previous question")
	}
	entry := chat.NewMessage(chat.RoleUser, question)
	m.session.Append(entry)
	m.logTranscript(entry)
	m.msgInput.Reset()
	m.errMsg = ""
	m.logger.Infof("question: %s", previewText(question, 120))
	m.syncChatViewport()
	return queryCmd(m.client, queryapi.QueryRequest{
		Question:       question,
		ConversationID: m.session.ConversationID(),
	})
}

func (m *model) runAnyway() tea.Cmd {
	req, problem := m.overrideRequest()
	if problem != "" {
		return m.setNotice(problem)
	}
	if !m.session.BeginRequest() {
		return m.setNotice("still waiting on the previous question")
	}
	m.errMsg = ""
	m.logger.Infof("override run: %s", previewText(req.Question, 120))
	m.syncChatViewport()
	return queryCmd(m.client, req)
}

// overrideRequest builds the run-anyway request: the proposed query from
// the waiting clarification, re-asked with the most recent user question
// and the override flag set. The second return names the problem when
// there is nothing to run.
func (m *model) overrideRequest() (queryapi.QueryRequest, string) {
	clar, ok := m.session.LastClarification()
	if !ok {
		return queryapi.QueryRequest{}, "nothing to run: no clarification is waiting"
	}
	question, ok := m.session.LastUserBody()
	if !ok {
		return queryapi.QueryRequest{}, "nothing to run: ask a question first"
	}
	return queryapi.QueryRequest{
		Question:       question,
		ConversationID: m.session.ConversationID(),
		Override:       true,
		SQLQuery:       clar.SQL,
	}, ""
}

func (m *model) refine() tea.Cmd {
	if _, ok := m.session.LastClarification(); !ok {
		return m.setNotice("no clarification to refine")
	}
	if question, ok := m.session.LastUserBody(); ok {
		m.msgInput.SetValue(question)
	}
	m.msgInput.Focus()
	return m.setNotice("edit the question and press enter")
}

func (m *model) copyLatestSQL() tea.Cmd {
	msgs := m.session.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].SQL != "" {
			return copySQLCmd(msgs[i].ID, msgs[i].SQL)
		}
	}
	return m.setNotice("no sql in the conversation yet")
}

func (m *model) clearConversation() tea.Cmd {
	m.session.Clear(m.cfg.Welcome)
	m.results = nil
	m.filtering = false
	m.filterInput.Reset()
	m.msgInput.Reset()
	m.errMsg = ""
	m.logger.Infof("conversation cleared")
	m.syncChatViewport()
	return m.setNotice("conversation cleared")
}

func (m *model) exportResults() tea.Cmd {
	if m.results == nil || m.results.FilteredLen() == 0 {
		return m.setNotice("nothing to export")
	}
	columns, rows := m.results.ExportView()
	if len(columns) == 0 {
		return m.setNotice("all columns are hidden")
	}
	m.logger.Infof("exporting %d rows, %d columns", len(rows), len(columns))
	return exportCmd(m.cfg.ExportDir, columns, rows)
}

func (m *model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	return noticeExpireCmd(m.noticeSeq)
}

func (m *model) logTranscript(entry chat.Message) {
	if err := m.transcript.Append(m.session.ConversationID(), entry); err != nil {
		m.logger.Warnf("transcript: %v", err)
	}
}

func (m *model) saveLastConversation() {
	if err := m.store.UpdateLastConversation(m.session.ConversationID()); err != nil {
		m.logger.Warnf("settings: %v", err)
	}
}

func (m *model) syncChatViewport() {
	width, height := m.chatLayout()
	if width <= 0 || height <= 0 {
		return
	}
	wrapWidth := width - 2
	if wrapWidth < 1 {
		wrapWidth = width
	}
	lines := m.chatLogLines(wrapWidth)
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("No messages yet.")}
	}
	atBottom := m.chatViewport.AtBottom()
	m.chatViewport.Width = width
	m.chatViewport.Height = height
	m.chatViewport.SetContent(strings.Join(lines, "\n"))
	if atBottom || m.session.Pending() {
		m.chatViewport.GotoBottom()
	}
}

// chatLayout is the width and height of the chat log area, leaving room
// for the composer and its hint line.
func (m model) chatLayout() (int, int) {
	width, height := m.bodySize()
	logHeight := height - m.msgInput.Height() - 4
	if logHeight < 3 {
		logHeight = 3
	}
	return width, logHeight
}

func (m model) bodySize() (int, int) {
	return bodySize(m.width, m.height)
}

func bodySize(width, height int) (int, int) {
	contentWidth, contentHeight := contentSize(width, height)
	bodyHeight := contentHeight - 7
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	return contentWidth, bodyHeight
}

func contentSize(width, height int) (int, int) {
	panelWidth, panelHeight := panelSize(width, height)
	contentWidth := panelWidth - 6
	contentHeight := panelHeight - 4
	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}
	return contentWidth, contentHeight
}

func panelSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	return width - 2, height - 2
}

func modalSize(width, height int) (int, int) {
	return panelSize(width, height)
}

func (m model) View() string {
	header := headerStyle.Render("FloatChat") + dimStyle.Render("  ·  ocean data in plain language")
	statusBar := m.renderStatusBar()
	viewLine := dimStyle.Render("View: " + m.viewName())
	alertLine := ""
	switch {
	case m.confirmQuit:
		alertLine = noticeStyle.Render(m.confirmMessage)
	case m.errMsg != "":
		alertLine = errStyle.Render(m.errMsg)
	case m.notice != "":
		alertLine = noticeStyle.Render(m.notice)
	}

	var body string
	switch m.activeView {
	case viewChat:
		body = m.viewChatBody()
	case viewResults:
		body = m.viewResults()
	case viewHistory:
		body = m.viewHistory()
	}
	if m.showHelp {
		body = strings.Join([]string{body, "", m.help.FullHelpView(m.keys.FullHelp())}, "\n")
	}
	footer := footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))

	content := strings.Join([]string{
		header,
		statusBar,
		viewLine,
		alertLine,
		"",
		body,
		"",
		footer,
	}, "\n")
	base := renderCentered(content, m.width, m.height)
	if m.commandMode {
		return overlayModal(dimStyle.Render(base), m.renderCommandModal(), m.width, m.height)
	}
	return base
}

func (m model) viewName() string {
	switch m.activeView {
	case viewResults:
		return "Results"
	case viewHistory:
		return "History"
	default:
		return "Chat"
	}
}

func (m model) renderStatusBar() string {
	healthPart := dimStyle.Render("● probing")
	switch {
	case m.healthErr != "":
		healthPart = unhealthyStyle.Render("● unreachable")
	case m.health != nil && m.health.Healthy():
		healthPart = healthyStyle.Render("● healthy")
	case m.health != nil:
		healthPart = unhealthyStyle.Render("● " + m.health.Status)
	}
	conv := "new conversation"
	if id := m.session.ConversationID(); id != "" {
		conv = "conv " + shortID(id)
	}
	parts := []string{
		dimStyle.Render(m.client.BaseURL()),
		healthPart,
		dimStyle.Render(conv),
		dimStyle.Render(fmt.Sprintf("%d turns", m.session.Len())),
	}
	if m.results != nil {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d rows", m.results.Len())))
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func healthSummary(h *queryapi.HealthResponse) string {
	return fmt.Sprintf("service %s · database %s · qdrant %s · embeddings %s",
		h.Status, h.Database, h.Qdrant, h.EmbeddingModel)
}

func (m model) viewChatBody() string {
	hint := footerStyle.Render("enter to ask, shift+enter for newline, up/down scroll the log")
	return strings.Join([]string{
		m.chatViewport.View(),
		"",
		msgBoxStyle.Render(m.msgInput.View()),
		hint,
	}, "\n")
}

func (m model) viewHistory() string {
	title := headerStyle.Render("Stored conversations") + "  " + dimStyle.Render("enter to restore · r to refresh")
	if !m.historyLoaded {
		return strings.Join([]string{title, "", dimStyle.Render("Loading conversations " + m.spinner.View())}, "\n")
	}
	if len(m.historyList.Items()) == 0 {
		return strings.Join([]string{title, "", dimStyle.Render("The service holds no conversations yet.")}, "\n")
	}
	return strings.Join([]string{title, "", m.historyList.View()}, "\n")
}

func newListModel() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	return l
}

func renderCentered(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	panelWidth, panelHeight := panelSize(width, height)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(panelWidth).
		Height(panelHeight).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func overlayModal(base, modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return base + "\n\n" + modal
	}
	baseLines := normalizeLines(base, width, height)
	modalCanvas := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
	modalLines := normalizeLines(modalCanvas, width, height)
	for i := 0; i < height; i++ {
		if strings.TrimSpace(ansi.Strip(modalLines[i])) != "" {
			baseLines[i] = modalLines[i]
		}
	}
	return strings.Join(baseLines, "\n")
}

func normalizeLines(input string, width, height int) []string {
	lines := strings.Split(input, "\n")
	out := make([]string, height)
	pad := lipgloss.NewStyle().Width(width)
	for i := 0; i < height; i++ {
		if i < len(lines) {
			out[i] = pad.Render(lines[i])
		} else {
			out[i] = pad.Render("")
		}
	}
	return out
}
