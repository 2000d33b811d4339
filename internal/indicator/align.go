package indicator

import "strings"

// Directive is a flex-style placement along one axis.
type Directive string

const (
	FlexStart Directive = "flex-start"
	Center    Directive = "center"
	FlexEnd   Directive = "flex-end"
)

// AlignCenter is the literal token for centered placement on both axes.
const AlignCenter = "center"

// AlignmentTokens lists every accepted alignment token in display order.
var AlignmentTokens = []string{
	"top-left", "top-center", "top-right",
	"center-left", AlignCenter, "center-right",
	"bottom-left", "bottom-center", "bottom-right",
}

// Alignment is where the icon box sits inside its container.
// Justify is the horizontal axis, Align the vertical one.
type Alignment struct {
	Justify Directive
	Align   Directive
}

var verticalDirectives = map[string]Directive{
	"top":    FlexStart,
	"center": Center,
	"bottom": FlexEnd,
}

var horizontalDirectives = map[string]Directive{
	"left":   FlexStart,
	"center": Center,
	"right":  FlexEnd,
}

// ParseAlignment maps a "<vertical>-<horizontal>" token to directives.
// Empty or "center" centers both axes; any unrecognized part centers that axis.
func ParseAlignment(token string) Alignment {
	if token == "" || token == AlignCenter {
		return Alignment{Justify: Center, Align: Center}
	}

	// Only the first two parts count; anything after them is ignored.
	parts := strings.Split(token, "-")

	a := Alignment{Justify: Center, Align: Center}
	if d, ok := verticalDirectives[parts[0]]; ok {
		a.Align = d
	}
	if len(parts) > 1 {
		if d, ok := horizontalDirectives[parts[1]]; ok {
			a.Justify = d
		}
	}
	return a
}

// ValidAlignment reports whether token is one of AlignmentTokens.
func ValidAlignment(token string) bool {
	for _, t := range AlignmentTokens {
		if t == token {
			return true
		}
	}
	return false
}
