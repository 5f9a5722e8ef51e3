// Package tui shows tail's output in a scrollable full-screen viewer.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/tail/internal/clipboard"
)

const flashDuration = 2 * time.Second

type flashExpiredMsg struct{}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("8"))
	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	matchStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("3")).
			Foreground(lipgloss.Color("0"))
	currentMatchStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("11")).
				Foreground(lipgloss.Color("0")).
				Bold(true)
	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1)
)

// ViewerModel is the bubbletea model for the output viewer.
type ViewerModel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Wrap    bool

	// Lines are the content lines; Rendered are the lines after wrapping.
	Lines    []string
	Rendered []string

	Search   SearchModel
	ShowHelp bool

	FlashMessage string
	FlashExpiry  time.Time

	viewport  viewport.Model
	input     textinput.Model
	keys      keyMap
	clipboard clipboard.Clipboard
	ready     bool
}

// NewViewerModel creates a viewer over content. board may be nil, which
// disables copying.
func NewViewerModel(title, content string, board clipboard.Clipboard) *ViewerModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "pattern"
	ti.CharLimit = 200

	return &ViewerModel{
		Title:     title,
		Content:   content,
		Wrap:      true,
		Lines:     SplitLines(content),
		Search:    NewSearchModel(),
		input:     ti,
		keys:      defaultKeyMap(),
		clipboard: board,
	}
}

// Init implements tea.Model
func (m *ViewerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		if m.Search.Active {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	case flashExpiredMsg:
		if time.Now().After(m.FlashExpiry) {
			m.FlashMessage = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *ViewerModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	height := max(msg.Height-1, 1) // status line

	if !m.ready {
		m.viewport = viewport.New(msg.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = height
	}
	m.input.Width = max(msg.Width-2, 1)
	m.refresh(true)
	return m, nil
}

func (m *ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.ShowHelp = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.Search.HasPattern() {
			m.Search.Update(ClearSearchMsg{})
			m.refresh(false)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true

	case key.Matches(msg, m.keys.Search):
		m.Search.Update(StartSearchMsg{})
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.Search.Update(NextMatchMsg{})
		m.scrollToMatch()

	case key.Matches(msg, m.keys.PrevMatch):
		m.Search.Update(PrevMatchMsg{})
		m.scrollToMatch()

	case key.Matches(msg, m.keys.ToggleWrap):
		m.Wrap = !m.Wrap
		m.refresh(true)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyToClipboard()

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	}
	return m, nil
}

func (m *ViewerModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.Search.Update(UpdateSearchInputMsg{Input: m.input.Value()})
		m.Search.Update(ExecuteSearchMsg{Lines: m.Rendered})
		if !m.Search.Active {
			m.input.Blur()
			m.refresh(false)
			m.scrollToMatch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.Search.Update(CancelSearchMsg{})
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.Search.Update(UpdateSearchInputMsg{Input: m.input.Value()})
	return m, cmd
}

// refresh re-renders the viewport content. rewrap recomputes wrapped lines
// and search matches for the current width.
func (m *ViewerModel) refresh(rewrap bool) {
	if rewrap {
		if m.Wrap {
			m.Rendered = HardWrap(m.Lines, m.Width)
		} else {
			m.Rendered = m.Lines
		}
		m.Search.Update(RematchMsg{Lines: m.Rendered})
	}
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m *ViewerModel) renderContent() string {
	if len(m.Search.Matches) == 0 {
		return strings.Join(m.Rendered, "\n")
	}

	matched := make(map[int]bool, len(m.Search.Matches))
	for _, line := range m.Search.Matches {
		matched[line] = true
	}
	current := m.Search.CurrentMatchLine()

	var b strings.Builder
	for i, line := range m.Rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch {
		case i == current:
			b.WriteString(currentMatchStyle.Render(line))
		case matched[i]:
			b.WriteString(matchStyle.Render(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// scrollToMatch centers the current match in the viewport.
func (m *ViewerModel) scrollToMatch() {
	line := m.Search.CurrentMatchLine()
	if line < 0 {
		return
	}
	m.refresh(false)
	m.viewport.SetYOffset(max(line-m.viewport.Height/2, 0))
}

func (m *ViewerModel) setFlashMessage(message string) tea.Cmd {
	m.FlashMessage = message
	m.FlashExpiry = time.Now().Add(flashDuration)
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

func (m *ViewerModel) copyToClipboard() tea.Cmd {
	if m.clipboard == nil {
		return m.setFlashMessage("Clipboard not available")
	}
	if err := clipboard.Copy(m.clipboard, []byte(m.Content)); err != nil {
		return m.setFlashMessage(fmt.Sprintf("Error: %v", err))
	}
	return m.setFlashMessage(fmt.Sprintf("Copied %d bytes to clipboard", len(m.Content)))
}

// View implements tea.Model
func (m *ViewerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}
	return m.viewport.View() + "\n" + m.renderStatusLine()
}

// renderStatusLine renders the bottom status line. Flash messages take
// priority over the search prompt and position.
func (m *ViewerModel) renderStatusLine() string {
	line := lipgloss.NewStyle().Width(m.Width)

	if m.FlashMessage != "" && time.Now().Before(m.FlashExpiry) {
		return flashStyle.Inherit(line).Render(m.FlashMessage)
	}

	if m.Search.Active {
		status := m.input.View()
		if m.Search.Error != "" {
			status += " " + errorStyle.Render("("+m.Search.Error+")")
		}
		return line.Render(status)
	}

	right := fmt.Sprintf("%d/%d  %3.f%%", m.viewport.YOffset+1, max(len(m.Rendered), 1), m.viewport.ScrollPercent()*100)
	if m.Search.HasPattern() {
		if len(m.Search.Matches) == 0 {
			right = fmt.Sprintf("/%s: no matches  %s", m.Search.Pattern, right)
		} else {
			right = fmt.Sprintf("/%s: %d of %d  %s", m.Search.Pattern, m.Search.CurrentMatch+1, len(m.Search.Matches), right)
		}
	}

	left := " " + m.Title
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Inherit(line).Render(left + strings.Repeat(" ", gap) + right + " ")
}

func (m *ViewerModel) renderHelp() string {
	var b strings.Builder
	b.WriteString("tail viewer\n\n")
	for _, binding := range m.keys.helpBindings() {
		h := binding.Help()
		fmt.Fprintf(&b, "  %-14s %s\n", h.Key, h.Desc)
	}
	b.WriteString("\nPress ? to return.")

	return helpStyle.Width(max(m.Width-4, 20)).Render(b.String())
}

// Run shows content in a full-screen viewer until the user quits.
func Run(title, content string, board clipboard.Clipboard) error {
	p := tea.NewProgram(NewViewerModel(title, content, board), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
