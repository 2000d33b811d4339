package indicator

// Visual defaults for an indicator.
const (
	DefaultIcon        = "◉"
	DefaultIconColor   = "#000000"
	DefaultStrokeColor = "none"
	DefaultIconSide    = 50.0
)

// Settings is the resolved configuration of one indicator. Values are plain
// data; callers replace the whole record through Instance.Configure.
type Settings struct {
	Icon            string
	IconColor       string
	BackgroundColor string // empty means transparent until the first tick
	StrokeColor     string
	StrokeWidth     float64

	OptimalColor  string
	MarginalColor string
	CriticalColor string

	Thresholds Thresholds

	IconWidth    *float64 // nil means unset; an explicit 0 is kept
	IconHeight   *float64
	Padding      float64
	Margin       float64
	BorderRadius float64
	Alignment    string

	// Source is the id of the widget whose value is polled. Empty disables polling.
	Source string
}

// DefaultSettings returns settings with every visual default applied and no source.
func DefaultSettings() Settings {
	return Settings{
		Icon:          DefaultIcon,
		IconColor:     DefaultIconColor,
		StrokeColor:   DefaultStrokeColor,
		OptimalColor:  DefaultOptimalColor,
		MarginalColor: DefaultMarginalColor,
		CriticalColor: DefaultCriticalColor,
		Alignment:     AlignCenter,
	}
}

// Palette returns the band palette, with the polling fallback as default.
func (s Settings) Palette() Palette {
	def := s.BackgroundColor
	if def == "" {
		def = FallbackBackground
	}
	return Palette{
		Optimal:  orColor(s.OptimalColor, DefaultOptimalColor),
		Marginal: orColor(s.MarginalColor, DefaultMarginalColor),
		Critical: orColor(s.CriticalColor, DefaultCriticalColor),
		Default:  def,
	}
}

func orColor(c, def string) string {
	if c == "" {
		return def
	}
	return c
}
