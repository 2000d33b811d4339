package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines the current display mode of the page.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewDetail
)

// keyMap defines the page's key bindings. It implements help.KeyMap.
type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	First   key.Binding
	Last    key.Binding
	Expand  key.Binding
	Back    key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh sources"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home", "first widget"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end", "last widget"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Expand, k.Help}
}

// FullHelp returns the bindings shown in the help overlay, by column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.First, k.Last},
		{k.Expand, k.Back, k.Refresh, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, keys.Back) {
		m.showHelp = false
		return true, nil
	}

	if m.viewMode == ViewDetail && key.Matches(msg, keys.Back) {
		m.viewMode = ViewGrid
		return true, nil
	}

	// The detail view scrolls with the navigation keys.
	if m.viewMode == ViewDetail && !key.Matches(msg, keys.Quit, keys.Refresh) {
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return true, cmd
	}

	n := len(m.page.Widgets())
	cols := m.layout.Columns

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.page.Unmount()
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		m.page.Refresh()
		m.notice = "refreshing sources"
		return true, nil

	case key.Matches(msg, keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
		return true, nil

	case key.Matches(msg, keys.Down):
		if m.selected+cols < n {
			m.selected += cols
		}
		return true, nil

	case key.Matches(msg, keys.Left):
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case key.Matches(msg, keys.Right):
		if m.selected < n-1 {
			m.selected++
		}
		return true, nil

	case key.Matches(msg, keys.First):
		m.selected = 0
		return true, nil

	case key.Matches(msg, keys.Last):
		if n > 0 {
			m.selected = n - 1
		}
		return true, nil

	case key.Matches(msg, keys.Expand):
		if m.viewMode == ViewGrid && n > 0 {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil
	}

	return false, nil
}
