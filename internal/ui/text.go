package ui

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to at most width display cells, ending with an
// ellipsis when something was cut. Only the first line of s is kept.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "…"
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// FormatValue renders a sampled number for people: thousands separators,
// at most two decimals. NaN renders as a dash.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "—"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return humanize.CommafWithDigits(v, 2)
}

// FormatAge renders how long ago t was, e.g. "3 seconds ago". Zero times
// render as "never".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if time.Since(t) < time.Second {
		return "just now"
	}
	return humanize.Time(t)
}

// FormatDuration renders a short duration with one decimal, e.g. "0.3s".
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "0ms"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
