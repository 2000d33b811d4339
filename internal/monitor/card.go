package monitor

import (
	"context"
	stderrors "errors"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// renderCard renders one widget as a bordered card sized by the layout.
func (m Model) renderCard(w config.Widget, selected bool) string {
	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	cols, rows := m.layout.Inner()

	var status string
	var body string
	if w.IsIndicator() {
		status, body = m.indicatorCard(w, cols, rows)
	} else {
		status, body = m.sourceCard(w, cols, rows)
	}

	body = lipgloss.NewStyle().MaxWidth(cols).MaxHeight(rows).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Left, titleLine(w.DisplayName(), status, cols), body)

	return style.
		Width(m.layout.CardWidth - 2).
		Height(m.layout.CardHeight - 2).
		Render(content)
}

// titleLine puts the widget name on the left and its status on the right.
func titleLine(name, status string, cols int) string {
	statusWidth := lipgloss.Width(status)
	if statusWidth > cols/2 {
		status = ""
		statusWidth = 0
	}
	nameWidth := cols - statusWidth - 1
	if status == "" {
		nameWidth = cols
	}
	name = ui.Truncate(name, nameWidth)
	gap := cols - runewidth.StringWidth(name) - statusWidth
	if gap < 1 || status == "" {
		return TitleStyle.Render(name)
	}
	return TitleStyle.Render(name) + strings.Repeat(" ", gap) + status
}

// indicatorCard renders an indicator's status and icon box.
func (m Model) indicatorCard(w config.Widget, cols, rows int) (string, string) {
	in, ok := m.page.Indicator(w.ID)
	if !ok {
		return "", ""
	}
	return indicatorStatus(in), RenderIndicator(in.Settings(), in.Background(), in.IconSize(), cols, rows)
}

func indicatorStatus(in *indicator.Instance) string {
	out := in.Outcome()
	switch {
	case in.Settings().Source == "":
		return MutedStyle.Render("no source")
	case out.Classified():
		return BandStyle(out.Band).Render(ui.SymbolFilled + " " + ui.FormatValue(out.Value))
	case out.Reason != nil:
		return MutedStyle.Render(ui.SymbolSkipped + " n/a")
	default:
		return MutedStyle.Render(ui.SymbolPending)
	}
}

// sourceCard renders a source's displayed text, with its age or error last.
func (m Model) sourceCard(w config.Widget, cols, rows int) (string, string) {
	typeTag := MutedStyle.Render(w.Type)

	snap, ok := m.page.Snapshot(w.ID)
	if !ok {
		return typeTag, MutedStyle.Render("waiting…")
	}

	var footer string
	if snap.Err != nil {
		footer = ErrorTextStyle.Render(ui.Truncate(ui.SymbolFail+" "+ErrorSummary(snap.Err), cols))
	} else {
		footer = MutedStyle.Render(ui.Truncate(ui.FormatAge(snap.At)+" · "+ui.FormatDuration(snap.Took), cols))
	}

	textRows := rows - 1
	if textRows < 1 || snap.Err != nil && snap.Text == "" {
		return typeTag, footer
	}

	lines := strings.Split(snap.Text, "\n")
	if len(lines) > textRows {
		lines = lines[:textRows]
	}
	for i, line := range lines {
		lines[i] = ValueStyle.Render(ui.Truncate(line, cols))
	}
	return typeTag, strings.Join(append(lines, footer), "\n")
}

// ErrorSummary returns a one-line description of a read failure.
func ErrorSummary(err error) string {
	var e *errors.Error
	switch {
	case errors.As(err, &e):
		return e.Message
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}

// iconGlyph returns what to draw for configured icon markup. Markup can't be
// drawn in a terminal, so it shows as the default glyph.
func iconGlyph(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" || strings.HasPrefix(icon, "<") {
		return indicator.DefaultIcon
	}
	return icon
}

// RenderIndicator draws the icon box inside a cols×rows area. The box is
// size layout units square (size rows by size·CellAspect columns), padded
// and aligned within the area, and clipped to fit it.
func RenderIndicator(s indicator.Settings, background string, size float64, cols, rows int) string {
	aspect := int(indicator.CellAspect)
	padRows := int(math.Round(s.Padding))
	padCols := padRows * aspect
	availW := cols - 2*padCols
	availH := rows - 2*padRows
	if availW < 1 || availH < 1 {
		padRows, padCols = 0, 0
		availW, availH = cols, rows
	}

	marginRows := int(math.Round(s.Margin))
	marginCols := marginRows * aspect
	if availW-2*marginCols < 1 || availH-2*marginRows < 1 {
		marginRows, marginCols = 0, 0
	}

	boxH := int(size)
	boxW := boxH * aspect
	boxH = clamp(boxH, 1, max(availH-2*marginRows, 1))
	boxW = clamp(boxW, 1, max(availW-2*marginCols, 1))

	bg, _ := ui.ResolveColor(background)
	fg := glyphColor(s.IconColor, background)
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center)

	contentW, contentH := boxW, boxH
	if border, ok := boxBorder(s); ok && boxW >= 3 && boxH >= 3 {
		stroke, _ := ui.ResolveColor(s.StrokeColor)
		style = style.Border(border).BorderForeground(stroke).BorderBackground(bg)
		contentW -= 2
		contentH -= 2
	}

	box := style.
		Width(contentW).
		Height(contentH).
		Margin(marginRows, marginCols).
		Render(ui.Truncate(iconGlyph(s.Icon), contentW))

	align := indicator.ParseAlignment(s.Alignment)
	placed := lipgloss.Place(availW, availH,
		position(align.Justify, lipgloss.Left, lipgloss.Right),
		position(align.Align, lipgloss.Top, lipgloss.Bottom),
		box)

	return lipgloss.NewStyle().Padding(padRows, padCols).Render(placed)
}

// glyphColor is the icon color, swapped for black or white when it is the
// same color as the box.
func glyphColor(iconColor, background string) lipgloss.TerminalColor {
	fg, _ := ui.ResolveColor(iconColor)
	icon, ok := ui.NormalizeHex(iconColor)
	if !ok {
		return fg
	}
	if bg, ok := ui.NormalizeHex(background); ok && bg == icon {
		return ui.ReadableOn(background)
	}
	return fg
}

// boxBorder picks the border for the icon box: rounded when a radius is
// set, thick for strokes of 3 or more, plain otherwise.
func boxBorder(s indicator.Settings) (lipgloss.Border, bool) {
	c, _ := ui.ResolveColor(s.StrokeColor)
	_, none := c.(lipgloss.NoColor)
	stroke := s.StrokeWidth > 0 && !none

	switch {
	case s.BorderRadius > 0:
		return lipgloss.RoundedBorder(), true
	case stroke && s.StrokeWidth >= 3:
		return lipgloss.ThickBorder(), true
	case stroke:
		return lipgloss.NormalBorder(), true
	}
	return lipgloss.Border{}, false
}

func position(d indicator.Directive, start, end lipgloss.Position) lipgloss.Position {
	switch d {
	case indicator.FlexStart:
		return start
	case indicator.FlexEnd:
		return end
	default:
		return lipgloss.Center
	}
}
