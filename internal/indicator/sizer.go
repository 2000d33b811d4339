package indicator

import "math"

// CellAspect is how many terminal columns make one horizontal layout unit.
// A terminal cell is roughly twice as tall as it is wide.
const CellAspect = 2.0

// sizeEpsilon is the smallest change in icon size that is committed.
const sizeEpsilon = 0.5

// Bounds is the rendered area available to a widget, in layout units.
type Bounds struct {
	Width  float64
	Height float64
}

// BoundsFromCells converts a terminal cell rectangle into layout units.
func BoundsFromCells(cols, rows int) Bounds {
	return Bounds{Width: float64(cols) / CellAspect, Height: float64(rows)}
}

// ComputeSize returns the side length of a square icon that fits inside b
// after padding on every edge. When b has no usable area yet the size falls
// back to the configured icon dimensions (nil ones default to each other,
// then to DefaultIconSide), never below 1.
func ComputeSize(b Bounds, padding float64, iconWidth, iconHeight *float64) float64 {
	availW := math.Max(b.Width-2*padding, 0)
	availH := math.Max(b.Height-2*padding, 0)
	if availW > 0 && availH > 0 {
		return math.Min(availW, availH)
	}
	return fallbackSize(iconWidth, iconHeight)
}

func fallbackSize(iconWidth, iconHeight *float64) float64 {
	w, h := DefaultIconSide, DefaultIconSide
	switch {
	case iconWidth != nil && iconHeight != nil:
		w, h = *iconWidth, *iconHeight
	case iconWidth != nil:
		w, h = *iconWidth, *iconWidth
	case iconHeight != nil:
		w, h = *iconHeight, *iconHeight
	}
	return math.Max(math.Min(w, h), 1)
}

// Sizer holds the committed icon size and suppresses sub-unit jitter.
type Sizer struct {
	size float64
}

// Size returns the committed icon size.
func (s *Sizer) Size() float64 {
	return s.size
}

// Update commits next if it differs from the current size by more than half a
// unit. It reports whether the size changed.
func (s *Sizer) Update(next float64) bool {
	if math.Abs(next-s.size) <= sizeEpsilon {
		return false
	}
	s.size = next
	return true
}

// Reset clears the committed size.
func (s *Sizer) Reset() {
	s.size = 0
}
