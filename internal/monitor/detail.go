package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// Detail view styles
var (
	detailContainerStyle = lipgloss.NewStyle().
				Padding(0, 2)

	detailSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1).
				MarginBottom(1)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Width(12)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)
)

// renderDetailView renders the selected widget expanded, scrollable.
func (m Model) renderDetailView() string {
	w, ok := m.Selected()
	if !ok {
		return LabelStyle.Render("No widget selected")
	}

	header := m.renderDetailHeader(w)
	footer := FooterStyle.Render(MutedStyle.Render("esc back • ↑/↓ scroll • q quit"))

	if !m.viewportReady {
		return header + "\n" + m.detailContent(w) + "\n" + footer
	}
	return header + "\n" + m.detailViewport.View() + "\n" + footer
}

func (m Model) renderDetailHeader(w config.Widget) string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render(w.DisplayName())
	kind := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | %s", w.ID, w.Type))
	return HeaderStyle.Render(title + kind)
}

// updateDetailViewportContent refreshes the viewport with the selected
// widget's details.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	w, ok := m.Selected()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.detailContent(w))
}

func (m Model) detailContent(w config.Widget) string {
	width := m.width - 6
	if width < 40 {
		width = 40
	}

	var sections []string
	if w.IsIndicator() {
		sections = m.indicatorDetail(w, width)
	} else {
		sections = m.sourceDetail(w, width)
	}
	return detailContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) indicatorDetail(w config.Widget, width int) []string {
	in, ok := m.page.Indicator(w.ID)
	if !ok {
		return []string{LabelStyle.Render("Indicator not mounted")}
	}
	s := in.Settings()
	out := in.Outcome()

	value := ui.FormatValue(out.Value)
	if out.Reason != nil {
		value = ErrorSummary(out.Reason)
	}
	if out.At.IsZero() {
		value = "waiting…"
	}

	sourceName := s.Source
	if sourceName == "" {
		sourceName = "none"
	}
	polling := "no"
	if in.Polling() {
		polling = fmt.Sprintf("yes, every %s", ui.FormatDuration(m.page.Config().Interval))
	}

	state := section("State", width,
		row("source", sourceName),
		row("polling", polling),
		row("value", value),
		row("band", BandStyle(out.Band).Render(out.Band.String())),
		row("background", colorOrNone(in.Background())),
		row("updated", ui.FormatAge(out.At)),
	)

	t := s.Thresholds
	order := "ascending"
	if !t.Ascending() {
		order = "not ascending, checked in order"
	}
	bands := section("Bands", width,
		row("optimal", fmt.Sprintf("≤ %s  %s", ui.FormatValue(t.Optimal), s.OptimalColor)),
		row("marginal", fmt.Sprintf("≤ %s  %s", ui.FormatValue(t.Marginal), s.MarginalColor)),
		row("critical", fmt.Sprintf("≤ %s  %s", ui.FormatValue(t.Critical), s.CriticalColor)),
		row("above", s.CriticalColor),
		row("order", order),
	)

	b := in.Bounds()
	look := section("Appearance", width,
		row("icon", iconGlyph(s.Icon)),
		row("icon color", s.IconColor),
		row("stroke", fmt.Sprintf("%s %s", ui.FormatValue(s.StrokeWidth), s.StrokeColor)),
		row("radius", ui.FormatValue(s.BorderRadius)),
		row("alignment", s.Alignment),
		row("padding", ui.FormatValue(s.Padding)),
		row("margin", ui.FormatValue(s.Margin)),
		row("size", fmt.Sprintf("%s in %s×%s", ui.FormatValue(in.IconSize()), ui.FormatValue(b.Width), ui.FormatValue(b.Height))),
	)

	preview := section("Preview", width,
		RenderIndicator(s, in.Background(), in.IconSize(), width-4, previewRows(in)))

	return []string{state, bands, look, preview}
}

// previewRows fits the preview to the icon size, between 3 and 12 rows.
func previewRows(in *indicator.Instance) int {
	return clamp(int(in.IconSize())+2*int(in.Settings().Padding+in.Settings().Margin), 3, 12)
}

func (m Model) sourceDetail(w config.Widget, width int) []string {
	info := []string{row("type", w.Type)}
	for _, kv := range [][2]string{
		{"value", w.Value},
		{"path", w.Path},
		{"command", w.Command},
		{"host", w.Host},
		{"url", w.URL},
		{"metric", w.Metric},
		{"query", w.Query},
	} {
		if kv[1] != "" {
			info = append(info, row(kv[0], kv[1]))
		}
	}
	info = append(info, row("timeout", ui.FormatDuration(m.page.Config().ReadTimeout(w))))

	snap, ok := m.page.Snapshot(w.ID)
	var body []string
	switch {
	case !ok:
		body = []string{MutedStyle.Render("waiting…")}
	case snap.Err != nil:
		body = []string{
			ErrorTextStyle.Render(ui.SymbolFail + " " + ErrorSummary(snap.Err)),
			MutedStyle.Render(snap.Err.Error()),
		}
	default:
		body = []string{ValueStyle.Render(snap.Text)}
	}
	if ok {
		body = append(body, "", MutedStyle.Render(fmt.Sprintf("read %s in %s", ui.FormatAge(snap.At), ui.FormatDuration(snap.Took))))
	}

	return []string{
		section("Source", width, info...),
		section("Value", width, body...),
	}
}

func section(title string, width int, lines ...string) string {
	content := TitleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return detailSectionStyle.Width(width).Render(content)
}

func row(key, value string) string {
	return detailKeyStyle.Render(key) + detailValueStyle.Render(value)
}

func colorOrNone(c string) string {
	if c == "" {
		return "transparent"
	}
	return c
}
