package indicator

import (
	"math"
	"time"
)

// Outcome is the result of evaluating one reading.
type Outcome struct {
	Value float64 // NaN when no value was parsed
	Band  Band
	Color string
	// Reason is why no classification happened: the provider error, or
	// ErrUnparsable. Nil when Band != BandNone.
	Reason error
	At     time.Time
}

// Classified reports whether the outcome carries a band.
func (o Outcome) Classified() bool {
	return o.Band != BandNone
}

// Evaluate turns one provider read into an Outcome. A read error or
// unparsable text yields BandNone and the palette's default color.
func Evaluate(s Settings, text string, readErr error) Outcome {
	palette := s.Palette()

	if readErr != nil {
		return Outcome{Value: math.NaN(), Band: BandNone, Color: palette.Default, Reason: readErr}
	}

	v, ok := ParseValue(text)
	if !ok {
		return Outcome{Value: math.NaN(), Band: BandNone, Color: palette.Default, Reason: ErrUnparsable}
	}

	band := s.Thresholds.Classify(v)
	return Outcome{Value: v, Band: band, Color: palette.Color(band)}
}
