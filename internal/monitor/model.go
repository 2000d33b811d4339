package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/indicator"
)

// clockInterval refreshes relative timestamps ("3s ago") between readings.
const clockInterval = time.Second

// Model is the Bubble Tea model for a running page.
type Model struct {
	page       *Page
	configPath string
	version    string

	width    int
	height   int
	layout   Layout
	selected int
	viewMode ViewMode
	showHelp bool
	quitting bool
	help     help.Model

	lastUpdate time.Time
	notice     string

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// readingMsg carries one poller reading into the update loop.
type readingMsg indicator.Reading

// clockMsg signals a periodic redraw.
type clockMsg time.Time

// ConfigMsg delivers a reloaded config. Send it with tea.Program.Send.
type ConfigMsg struct {
	Config *config.Config
}

// NewModel creates the model for a mounted page.
func NewModel(page *Page, configPath, version string) Model {
	h := help.New()
	h.Styles.ShortKey = LabelStyle
	h.Styles.ShortDesc = MutedStyle
	h.Styles.FullKey = TitleStyle
	h.Styles.FullDesc = LabelStyle

	return Model{
		page:       page,
		configPath: configPath,
		version:    version,
		layout:     ComputeLayout(0, 0, len(page.Widgets())),
		help:       h,
	}
}

// Init starts listening for readings and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForReading(m.page.Readings()),
		clockCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()

		viewportHeight := m.height - headerLines - footerLines
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerLines
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case readingMsg:
		if m.page.Handle(indicator.Reading(msg)) {
			m.lastUpdate = msg.At
			if m.viewMode == ViewDetail {
				m.updateDetailViewportContent()
			}
		}
		if m.quitting {
			return m, nil
		}
		return m, waitForReading(m.page.Readings())

	case clockMsg:
		if m.quitting {
			return m, nil
		}
		return m, clockCmd()

	case ConfigMsg:
		if msg.Config == nil {
			return m, nil
		}
		m.page.Reload(msg.Config)
		m.relayout()
		if n := len(m.page.Widgets()); m.selected >= n {
			m.selected = max(n-1, 0)
		}
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}
		m.notice = "config reloaded"
	}

	return m, nil
}

// View renders the page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderPage()
}

// relayout recomputes the card grid and feeds every indicator its new bounds.
func (m *Model) relayout() {
	m.layout = ComputeLayout(m.width, m.height, len(m.page.Widgets()))
	bounds := m.layout.Bounds()
	for _, w := range m.page.Config().Indicators() {
		m.page.Resize(w.ID, bounds)
	}
}

// waitForReading blocks on the next poller reading.
func waitForReading(ch <-chan indicator.Reading) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return readingMsg(r)
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Selected returns the currently selected widget, if any.
func (m Model) Selected() (config.Widget, bool) {
	widgets := m.page.Widgets()
	if m.selected < 0 || m.selected >= len(widgets) {
		return config.Widget{}, false
	}
	return widgets[m.selected], true
}

// Layout returns the current card grid.
func (m Model) Layout() Layout {
	return m.layout
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
