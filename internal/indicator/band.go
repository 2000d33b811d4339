package indicator

// Band is the classification of a sampled value.
type Band int

const (
	// BandNone means no classification happened this tick.
	BandNone Band = iota
	BandOptimal
	BandMarginal
	BandCritical
	// BandOverCritical is above the critical threshold. It renders with the
	// critical color; there is no separate tier.
	BandOverCritical
)

// String returns a human-readable band name.
func (b Band) String() string {
	switch b {
	case BandOptimal:
		return "optimal"
	case BandMarginal:
		return "marginal"
	case BandCritical:
		return "critical"
	case BandOverCritical:
		return "over-critical"
	default:
		return "none"
	}
}

// Default band colors and fallbacks.
const (
	DefaultOptimalColor  = "green"
	DefaultMarginalColor = "orange"
	DefaultCriticalColor = "red"
	// FallbackBackground is used while polling when no background is configured.
	FallbackBackground = "gray"
)

// Thresholds holds the three band boundaries. They are expected to ascend but
// are never reordered; Classify checks them in order regardless.
type Thresholds struct {
	Optimal  float64
	Marginal float64
	Critical float64
}

// ResolveThresholds applies the cascading defaults: optimal falls back to 0,
// marginal to optimal, critical to marginal.
func ResolveThresholds(optimal, marginal, critical *float64) Thresholds {
	var t Thresholds
	if optimal != nil {
		t.Optimal = *optimal
	}
	t.Marginal = t.Optimal
	if marginal != nil {
		t.Marginal = *marginal
	}
	t.Critical = t.Marginal
	if critical != nil {
		t.Critical = *critical
	}
	return t
}

// Ascending reports whether optimal <= marginal <= critical.
func (t Thresholds) Ascending() bool {
	return t.Optimal <= t.Marginal && t.Marginal <= t.Critical
}

// Classify places v into a band. The optimal check runs first, then marginal,
// then critical.
func (t Thresholds) Classify(v float64) Band {
	switch {
	case v <= t.Optimal:
		return BandOptimal
	case v <= t.Marginal:
		return BandMarginal
	case v <= t.Critical:
		return BandCritical
	default:
		return BandOverCritical
	}
}

// Palette maps bands to colors.
type Palette struct {
	Optimal  string
	Marginal string
	Critical string
	// Default is shown when a tick produced no classification.
	Default string
}

// Color returns the color for a band.
func (p Palette) Color(b Band) string {
	switch b {
	case BandOptimal:
		return p.Optimal
	case BandMarginal:
		return p.Marginal
	case BandCritical, BandOverCritical:
		return p.Critical
	default:
		return p.Default
	}
}
