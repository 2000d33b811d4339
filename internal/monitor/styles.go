package monitor

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/indicator"
)

// Page color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	// Width and Height are set per render from the layout.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1).
			MarginBottom(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim).
			Italic(true)
)

// Card chrome: border and horizontal padding, plus one title line.
const (
	cardChromeCols = 4
	cardChromeRows = 3
)

// BandColor returns the chrome color used to label a band in text. The box
// itself uses the configured band colors.
func BandColor(b indicator.Band) lipgloss.Color {
	switch b {
	case indicator.BandOptimal:
		return ColorHealthy
	case indicator.BandMarginal:
		return ColorWarning
	case indicator.BandCritical, indicator.BandOverCritical:
		return ColorCritical
	default:
		return ColorTextMuted
	}
}

// BandStyle returns a style with the band's chrome color.
func BandStyle(b indicator.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandColor(b))
}
