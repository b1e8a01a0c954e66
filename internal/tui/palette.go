package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type commandSpec struct {
	Name        string
	Usage       string
	Description string
}

var commandCatalog = []commandSpec{
	{Name: "chat", Usage: "/chat", Description: "open the chat view"},
	{Name: "results", Usage: "/results", Description: "open the results view"},
	{Name: "history", Usage: "/history", Description: "browse stored conversations"},
	{Name: "resume", Usage: "/resume", Description: "reopen the conversation from the previous run"},
	{Name: "clear", Usage: "/clear", Description: "start a fresh conversation"},
	{Name: "export", Usage: "/export", Description: "save the filtered rows as csv"},
	{Name: "health", Usage: "/health", Description: "probe the query service"},
	{Name: "copy", Usage: "/copy", Description: "copy the latest sql"},
	{Name: "run", Usage: "/run", Description: "run the clarified query as-is"},
	{Name: "refine", Usage: "/refine", Description: "edit the last question"},
	{Name: "help", Usage: "/help", Description: "toggle the help overlay"},
	{Name: "quit", Usage: "/quit", Description: "exit"},
	{Name: "q", Usage: "/q", Description: "exit"},
}

func (m model) openCommandPalette() (tea.Model, tea.Cmd) {
	m.commandMode = true
	m.commandInput.Reset()
	m.commandInput.Focus()
	m.msgInput.Blur()
	m.updateCommandResults()
	return m, nil
}

func (m model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeCommandPalette()
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.commandInput.Value())
		if input == "" && len(m.commandResults) > 0 {
			input = "/" + m.commandResults[m.commandIndex].Name
		}
		m.closeCommandPalette()
		if input == "" {
			return m, nil
		}
		m.commandHistory = append(m.commandHistory, input)
		cmd := m.applyCommand(input)
		return m, cmd
	case "tab":
		if len(m.commandResults) > 0 {
			m.commandInput.SetValue(m.commandResults[m.commandIndex].Name)
			m.commandInput.CursorEnd()
			m.updateCommandResults()
		}
		return m, nil
	case "up":
		m.navigateCommandSelection(-1)
		return m, nil
	case "down":
		m.navigateCommandSelection(1)
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.updateCommandResults()
	return m, cmd
}

func (m *model) closeCommandPalette() {
	m.commandMode = false
	m.commandInput.Blur()
	if m.activeView == viewChat {
		m.msgInput.Focus()
	}
}

func (m *model) applyCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	name := strings.TrimLeft(strings.ToLower(parts[0]), "/:")
	switch name {
	case "chat":
		m.activeView = viewChat
		m.msgInput.Focus()
		m.syncChatViewport()
	case "results":
		m.activeView = viewResults
		m.msgInput.Blur()
		m.rebuildResultsGrid()
	case "history":
		m.activeView = viewHistory
		m.msgInput.Blur()
		return conversationsCmd(m.client)
	case "resume":
		if m.session.Pending() {
			return m.setNotice("still waiting on the previous question")
		}
		id := m.store.LastConversation()
		if id == "" {
			return m.setNotice("no previous conversation recorded")
		}
		m.logger.Infof("resuming conversation %s", id)
		return conversationCmd(m.client, id)
	case "clear":
		return m.clearConversation()
	case "export":
		return m.exportResults()
	case "health":
		return healthCmd(m.client, true)
	case "copy":
		return m.copyLatestSQL()
	case "run":
		return m.runAnyway()
	case "refine":
		m.activeView = viewChat
		return m.refine()
	case "help":
		m.showHelp = !m.showHelp
	case "quit", "q":
		return tea.Quit
	default:
		return m.setNotice("unknown command: /" + name)
	}
	return nil
}

func (m *model) updateCommandResults() {
	input := strings.TrimSpace(m.commandInput.Value())
	candidates := commandCatalog
	if input == "" {
		m.commandResults = candidates[:min(8, len(candidates))]
		m.commandIndex = 0
		return
	}
	prefix := strings.TrimLeft(strings.ToLower(strings.Fields(input)[0]), "/:")
	filtered := make([]commandSpec, 0, len(candidates))
	for _, cmd := range candidates {
		if strings.HasPrefix(cmd.Name, prefix) {
			filtered = append(filtered, cmd)
		}
	}
	if len(filtered) > 8 {
		filtered = filtered[:8]
	}
	m.commandResults = filtered
	if m.commandIndex >= len(filtered) {
		m.commandIndex = 0
	}
}

func (m *model) navigateCommandSelection(delta int) {
	if len(m.commandResults) == 0 {
		return
	}
	next := m.commandIndex + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.commandResults) {
		next = len(m.commandResults) - 1
	}
	m.commandIndex = next
}

func (m model) renderCommandPalette() string {
	lines := []string{
		m.commandInput.View(),
	}
	if len(m.commandResults) > 0 {
		lines = append(lines, "")
		for i, cmd := range m.commandResults {
			line := fmt.Sprintf("%s - %s", cmd.Usage, cmd.Description)
			if i == m.commandIndex {
				lines = append(lines, noticeStyle.Render("> "+line))
			} else {
				lines = append(lines, dimStyle.Render("  "+line))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m model) renderCommandModal() string {
	width, height := modalSize(m.width, m.height)
	m.commandInput.Width = width - 6
	title := headerStyle.Render("Command")
	body := strings.Join([]string{
		m.renderCommandPalette(),
		"",
		dimStyle.Render("Type /chat, /results, /history, /clear, /export, /health, /quit"),
	}, "\n")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(width).
		Height(height).
		Render(strings.Join([]string{title, "", body}, "\n"))
	return box
}
