package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// renderPage renders the complete page view.
func (m Model) renderPage() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewDetail {
		return m.renderDetailView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with page stats.
func (m Model) renderHeader() string {
	cfg := m.page.Config()
	widgets := len(cfg.Widgets)
	indicators := len(cfg.Indicators())

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("beacon")

	update := "waiting"
	if !m.lastUpdate.IsZero() {
		update = "last update " + ui.FormatAge(m.lastUpdate)
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d widgets | %d indicators | %s", widgets, indicators, update))

	line := title + stats
	if m.notice != "" {
		line += "  " + NoticeStyle.Render(m.notice)
	}
	return HeaderStyle.Render(line)
}

// renderCards renders the widget grid.
func (m Model) renderCards() string {
	widgets := m.page.Widgets()
	if len(widgets) == 0 {
		return LabelStyle.Render("No widgets configured. Add some to " + m.configLabel())
	}

	cards := make([]string, 0, len(widgets))
	for i, w := range widgets {
		cards = append(cards, m.renderCard(w, i == m.selected))
	}
	return layoutCards(cards, m.layout.Columns)
}

// layoutCards arranges cards in rows of cols.
func layoutCards(cards []string, cols int) string {
	if len(cards) == 0 {
		return ""
	}
	if cols < 1 {
		cols = 1
	}

	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(keys.ShortHelp()))
}

func (m Model) configLabel() string {
	if m.configPath == "" {
		return ".beacon.yaml"
	}
	return m.configPath
}
