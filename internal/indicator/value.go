package indicator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnparsable is reported when source text has no leading number.
var ErrUnparsable = errors.New("value is not a number")

// numericPrefix matches the longest leading decimal literal, the same prefix a
// lenient float parser accepts: optional sign, digits with optional fraction
// (or a bare fraction), optional exponent, or Infinity.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseValue extracts a number from displayed text. Leading whitespace is
// skipped and trailing garbage ignored, so "12.5%" reads as 12.5 and
// " 3 items" as 3. Text with no leading number returns false.
func ParseValue(text string) (float64, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out-of-range exponents come back as ±Inf with ErrRange; keep them.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}
