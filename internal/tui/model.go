// Package tui provides the Bubble Tea statistics browser.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlvnd/chatstat/internal/model"
	"github.com/mlvnd/chatstat/internal/registry"
	"github.com/mlvnd/chatstat/internal/stats"
)

const (
	tabReport = iota
	tabDaily
	tabHourly
	tabReplies
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea statistics browser.
type Model struct {
	acc       *stats.Accumulator
	chats     []model.Chat
	reg       *registry.Registry
	topEmojis int
	bins      int

	tabs       []string
	activeTab  int
	activeChat int
	viewports  []viewport.Model

	width  int
	height int
}

// NewModel constructs a statistics browser model.
func NewModel(acc *stats.Accumulator, chats []model.Chat, reg *registry.Registry, topEmojis, bins int) *Model {
	m := &Model{
		acc:       acc,
		chats:     chats,
		reg:       reg,
		topEmojis: topEmojis,
		bins:      bins,
		tabs:      []string{"Report", "Daily", "Hourly", "Reply Times"},
	}
	m.initViewports()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "tab", "]":
			m.moveChat(1)
			return m, tea.ClearScreen
		case "shift+tab", "[":
			m.moveChat(-1)
			return m, tea.ClearScreen
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) moveChat(delta int) {
	count := len(m.chats)
	if count == 0 {
		return
	}
	next := m.activeChat + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeChat = next
	m.renderTabContents()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderChatSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderChatSummary() string {
	if len(m.chats) == 0 {
		return headerStyle.Render("No chats loaded.")
	}
	chat := m.chats[m.activeChat]
	summary := fmt.Sprintf("Chat %d/%d: %s (%d messages)", m.activeChat+1, len(m.chats), chat.Label, len(chat.Messages))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := "Tabs: left/right  Chat: tab/shift+tab  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q"
	return headerStyle.Render(help)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if len(m.chats) == 0 {
		for i := range m.viewports {
			m.viewports[i].SetContent("No chats loaded.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	chat := m.chats[m.activeChat]
	m.viewports[tabReport].SetContent(m.renderReport(chat))
	m.viewports[tabDaily].SetContent(m.renderDaily(chat, width))
	m.viewports[tabHourly].SetContent(m.renderHourly(chat, width))
	m.viewports[tabReplies].SetContent(m.renderReplies(chat, width))
}

func (m *Model) renderReport(chat model.Chat) string {
	if len(chat.Messages) == 0 {
		return "No messages."
	}
	var buf bytes.Buffer
	if err := stats.RenderChatReport(&buf, m.acc, m.activeChat, chat, m.reg, m.topEmojis); err != nil {
		return fmt.Sprintf("Failed to render report: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderDaily(chat model.Chat, width int) string {
	if len(chat.Messages) == 0 {
		return "No messages."
	}
	var buf bytes.Buffer
	if err := stats.RenderChatDaily(&buf, m.acc, m.activeChat, chat, m.reg, width); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderHourly(chat model.Chat, width int) string {
	if len(chat.Messages) == 0 {
		return "No messages."
	}
	var buf bytes.Buffer
	if err := stats.RenderChatHourly(&buf, m.acc, m.activeChat, chat, m.reg, width); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderReplies(chat model.Chat, width int) string {
	if len(chat.Messages) == 0 {
		return "No messages."
	}
	var buf bytes.Buffer
	if err := stats.RenderChatReplyTimes(&buf, m.acc, m.activeChat, chat, m.reg, m.bins, width); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	if buf.Len() == 0 {
		return "No replies recorded."
	}
	return strings.TrimRight(buf.String(), "\n")
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
