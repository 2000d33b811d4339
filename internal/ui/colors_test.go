package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSemanticColorsExist(t *testing.T) {
	tests := []struct {
		name  string
		color lipgloss.Color
	}{
		{"ColorSuccess", ColorSuccess},
		{"ColorError", ColorError},
		{"ColorWarning", ColorWarning},
		{"ColorInfo", ColorInfo},
		{"ColorPrimary", ColorPrimary},
		{"ColorSecondary", ColorSecondary},
		{"ColorMuted", ColorMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, string(tt.color), "%s should not be empty", tt.name)
		})
	}
}

func TestAccentColorsAreHex(t *testing.T) {
	for _, c := range []lipgloss.Color{ColorNeonPink, ColorNeonCyan, ColorNeonPurple, ColorGlassBorder} {
		_, ok := NormalizeHex(string(c))
		assert.True(t, ok, "accent %s should be hex", c)
	}
}

func TestStylesRenderText(t *testing.T) {
	for _, style := range []lipgloss.Style{SuccessStyle(), ErrorStyle(), WarningStyle(), MutedStyle()} {
		assert.Contains(t, style.Render("hello"), "hello")
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader(HeaderInfo{Version: "v1.2.0", Config: "/tmp/.beacon.yaml"})
	assert.Contains(t, out, "beacon")
	assert.Contains(t, out, "v1.2.0")
	assert.Contains(t, out, "/tmp/.beacon.yaml")
	assert.Contains(t, out, "━")
}
