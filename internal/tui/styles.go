package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	systemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	boldStyle       = lipgloss.NewStyle().Bold(true)
	codeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	sqlBlockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("153")).Background(lipgloss.AdaptiveColor{Light: "254", Dark: "235"})
	healthyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unhealthyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	inputBackground = lipgloss.AdaptiveColor{Light: "252", Dark: "236"}
	msgBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(inputBackground)
	tableHeadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("153"))
	tableSelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
)
