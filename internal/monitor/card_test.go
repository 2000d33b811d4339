package monitor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/stretchr/testify/assert"
)

func TestIconGlyph(t *testing.T) {
	tests := []struct {
		icon string
		want string
	}{
		{"", indicator.DefaultIcon},
		{"   ", indicator.DefaultIcon},
		{`<svg viewBox="0 0 10 10"><circle r="5"/></svg>`, indicator.DefaultIcon},
		{"★", "★"},
		{" ⚡ ", "⚡"},
	}

	for _, tt := range tests {
		t.Run(tt.icon, func(t *testing.T) {
			assert.Equal(t, tt.want, iconGlyph(tt.icon))
		})
	}
}

func TestGlyphColor(t *testing.T) {
	tests := []struct {
		name       string
		icon       string
		background string
		want       lipgloss.TerminalColor
	}{
		{"differs from box", "#000000", "red", lipgloss.Color("#000000")},
		{"black on black", "#000000", "black", lipgloss.Color("#ffffff")},
		{"white on white", "white", "#FFF", lipgloss.Color("#000000")},
		{"no background yet", "#000000", "", lipgloss.Color("#000000")},
		{"ansi codes are left alone", "214", "214", lipgloss.Color("214")},
		{"no icon color", "none", "black", lipgloss.NoColor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, glyphColor(tt.icon, tt.background))
		})
	}
}

func TestRenderIndicator_FillsArea(t *testing.T) {
	tests := []struct {
		name     string
		size     float64
		padding  float64
		margin   float64
		cols     int
		rows     int
		wantIcon bool
	}{
		{name: "small box", size: 3, cols: 20, rows: 7, wantIcon: true},
		{name: "oversized box clips", size: 50, cols: 20, rows: 7, wantIcon: true},
		{name: "padding", size: 3, padding: 1, cols: 20, rows: 7, wantIcon: true},
		{name: "margin", size: 2, margin: 1, cols: 20, rows: 7, wantIcon: true},
		{name: "padding too large is dropped", size: 3, padding: 10, cols: 20, rows: 7, wantIcon: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := indicator.DefaultSettings()
			s.Padding = tt.padding
			s.Margin = tt.margin

			out := RenderIndicator(s, "red", tt.size, tt.cols, tt.rows)

			assert.Equal(t, tt.cols, lipgloss.Width(out))
			assert.Equal(t, tt.rows, lipgloss.Height(out))
			assert.Equal(t, tt.wantIcon, strings.Contains(out, indicator.DefaultIcon))
		})
	}
}

func TestRenderIndicator_Border(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*indicator.Settings)
		corner string
	}{
		{name: "no stroke", modify: func(*indicator.Settings) {}, corner: ""},
		{name: "radius", modify: func(s *indicator.Settings) { s.BorderRadius = 4 }, corner: "╭"},
		{name: "thin stroke", modify: func(s *indicator.Settings) {
			s.StrokeWidth = 1
			s.StrokeColor = "blue"
		}, corner: "┌"},
		{name: "thick stroke", modify: func(s *indicator.Settings) {
			s.StrokeWidth = 4
			s.StrokeColor = "#00ff00"
		}, corner: "┏"},
		{name: "stroke without color", modify: func(s *indicator.Settings) {
			s.StrokeWidth = 2
			s.StrokeColor = "none"
		}, corner: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := indicator.DefaultSettings()
			tt.modify(&s)

			out := RenderIndicator(s, "", 4, 20, 8)

			for _, c := range []string{"╭", "┌", "┏"} {
				if c == tt.corner {
					assert.Contains(t, out, c)
				} else {
					assert.NotContains(t, out, c)
				}
			}
		})
	}
}

func TestRenderIndicator_Alignment(t *testing.T) {
	tests := []struct {
		alignment string
		wantRow   int
		wantLeft  bool
		wantRight bool
	}{
		{alignment: "top-left", wantRow: 1, wantLeft: true},
		{alignment: "bottom-right", wantRow: 7, wantRight: true},
		{alignment: "center", wantRow: 4},
	}

	for _, tt := range tests {
		t.Run(tt.alignment, func(t *testing.T) {
			s := indicator.DefaultSettings()
			s.Alignment = tt.alignment

			out := RenderIndicator(s, "", 3, 30, 9)
			lines := strings.Split(out, "\n")

			row, col := -1, -1
			for i, line := range lines {
				if j := strings.Index(line, indicator.DefaultIcon); j >= 0 {
					row, col = i, j
					break
				}
			}
			assert.Equal(t, tt.wantRow, row)
			if tt.wantLeft {
				assert.Less(t, col, 6)
			}
			if tt.wantRight {
				assert.GreaterOrEqual(t, col, 24)
			}
			if !tt.wantLeft && !tt.wantRight {
				assert.Greater(t, col, 6)
				assert.Less(t, col, 24)
			}
		})
	}
}

func TestTitleLine(t *testing.T) {
	line := titleLine("Load", "static", 20)
	assert.Equal(t, 20, lipgloss.Width(line))
	assert.True(t, strings.HasPrefix(line, "Load"))
	assert.True(t, strings.HasSuffix(line, "static"))

	// Status wider than half the card is dropped.
	line = titleLine("Load", "a very long status", 20)
	assert.Equal(t, "Load", line)

	line = titleLine("An extremely long widget label", "", 10)
	assert.Equal(t, 10, lipgloss.Width(line))
}

func TestErrorSummary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured", errors.New(errors.ErrSource, "Can't read /tmp/x", "check it"), "Can't read /tmp/x"},
		{"deadline", context.DeadlineExceeded, "timed out"},
		{"wrapped deadline", fmt.Errorf("read: %w", context.DeadlineExceeded), "timed out"},
		{"multi-line", fmt.Errorf("first line\nsecond line"), "first line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorSummary(tt.err))
		})
	}
}
