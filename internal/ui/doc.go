// Package ui holds the terminal presentation helpers shared by beacon's
// commands: the color palette, color resolution for user-configured colors,
// status symbols, and text formatting.
//
// # Colors
//
// Chrome colors are ANSI codes so they follow the terminal theme:
//
//	ColorSuccess   (green)  - Passing checks, optimal values
//	ColorError     (red)    - Failures
//	ColorWarning   (yellow) - Warnings
//	ColorMuted     (gray)   - Secondary text, timing info
//
// Widget colors come from config and go through ResolveColor, which accepts
// CSS keywords, hex, rgb() and ANSI codes:
//
//	c, ok := ui.ResolveColor("orange")   // lipgloss.Color("#ffa500"), true
//	c, ok = ui.ResolveColor("none")      // lipgloss.NoColor{}, true
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui
