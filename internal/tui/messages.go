package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
	"github.com/bssshyamsundhar/float-chat/internal/markup"
	"github.com/bssshyamsundhar/float-chat/internal/table"
)

// chatLogLines renders the whole conversation for the chat viewport.
// Each turn is a styled role label followed by its wrapped body, with
// follow-up hints attached to the turns that carry them.
func (m model) chatLogLines(wrapWidth int) []string {
	if wrapWidth < 1 {
		wrapWidth = 1
	}
	msgs := m.session.Messages()
	latestClarifyID := ""
	if clar, ok := m.session.LastClarification(); ok {
		latestClarifyID = clar.ID
	}

	lines := make([]string, 0, len(msgs)*4)
	for _, msg := range msgs {
		lines = append(lines, roleLabel(msg))
		for _, line := range renderBodyLines(msg.Body, wrapWidth) {
			lines = append(lines, "  "+line)
		}
		if msg.HasRows() {
			for _, preview := range rowPreviewLines(msg, wrapWidth-2) {
				lines = append(lines, "  "+dimStyle.Render(preview))
			}
			lines = append(lines, "  "+dimStyle.Render(fmt.Sprintf("%d rows · press tab for the results view", len(msg.Rows))))
		}
		if msg.SQL != "" && msg.ID == m.copiedID {
			lines = append(lines, "  "+noticeStyle.Render("sql copied to clipboard"))
		}
		if msg.NeedsClarification && msg.ID == latestClarifyID {
			lines = append(lines, "  "+noticeStyle.Render("ctrl+r run as-is · ctrl+e refine the question"))
		}
		lines = append(lines, "")
	}

	if m.session.Pending() {
		lines = append(lines, dimStyle.Render("Waiting for the ocean "+m.spinner.View()))
	}
	if len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// rowPreviewLines shows the first rows of a result inline, one line per
// row, so a short answer is readable without leaving the chat.
func rowPreviewLines(msg chat.Message, width int) []string {
	const maxPreviewRows = 3
	if width < 8 {
		width = 8
	}
	n := min(len(msg.Rows), maxPreviewRows)
	out := make([]string, 0, n)
	for _, row := range msg.Rows[:n] {
		pairs := make([]string, 0, len(msg.Columns))
		for _, col := range msg.Columns {
			pairs = append(pairs, col+"="+table.FormatCell(row[col]))
		}
		line := strings.Join(pairs, "  ")
		if r := []rune(line); len(r) > width {
			line = string(r[:width-3]) + "..."
		}
		out = append(out, line)
	}
	return out
}

func roleLabel(msg chat.Message) string {
	stamp := dimStyle.Render(" · " + msg.CreatedAt.Local().Format("15:04"))
	switch msg.Role {
	case chat.RoleUser:
		return userStyle.Render("You") + stamp
	case chat.RoleSystem:
		return systemStyle.Render("System") + stamp
	case chat.RoleError:
		return errStyle.Render("Error") + stamp
	default:
		return botStyle.Render("FloatChat") + stamp
	}
}

// renderBodyLines turns a message body into styled terminal lines. The
// body's inline markup becomes text styling; fenced blocks become their
// own block-styled lines that never wrap mid-escape.
func renderBodyLines(body string, wrapWidth int) []string {
	segs := markup.Parse(body)
	var lines []string
	var cur strings.Builder

	flush := func() {
		line := cur.String()
		cur.Reset()
		if line == "" {
			lines = append(lines, "")
			return
		}
		wrapped := ansi.Wrap(line, wrapWidth, "")
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}

	for _, seg := range segs {
		switch seg.Kind {
		case markup.Text:
			cur.WriteString(seg.Text)
		case markup.Bold:
			cur.WriteString(boldStyle.Render(seg.Text))
		case markup.Code:
			cur.WriteString(codeStyle.Render(seg.Text))
		case markup.Break:
			flush()
		case markup.CodeBlock:
			if cur.Len() > 0 {
				flush()
			}
			for _, blockLine := range strings.Split(seg.Text, "\n") {
				wrapped := ansi.Wrap(blockLine, wrapWidth, "")
				for _, piece := range strings.Split(wrapped, "\n") {
					lines = append(lines, sqlBlockStyle.Render(" "+piece+" "))
				}
			}
		}
	}
	if cur.Len() > 0 {
		flush()
	}
	return lines
}
