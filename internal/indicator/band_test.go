package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestResolveThresholds(t *testing.T) {
	tests := []struct {
		name     string
		optimal  *float64
		marginal *float64
		critical *float64
		want     Thresholds
	}{
		{"all unset", nil, nil, nil, Thresholds{0, 0, 0}},
		{"only optimal", ptr(10), nil, nil, Thresholds{10, 10, 10}},
		{"optimal and marginal", ptr(10), ptr(20), nil, Thresholds{10, 20, 20}},
		{"only critical", nil, nil, ptr(5), Thresholds{0, 0, 5}},
		{"all set", ptr(1), ptr(2), ptr(3), Thresholds{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveThresholds(tt.optimal, tt.marginal, tt.critical))
		})
	}
}

func TestThresholdsClassify(t *testing.T) {
	th := Thresholds{Optimal: 10, Marginal: 20, Critical: 30}

	tests := []struct {
		value float64
		want  Band
	}{
		{-5, BandOptimal},
		{10, BandOptimal},
		{10.01, BandMarginal},
		{20, BandMarginal},
		{25, BandCritical},
		{30, BandCritical},
		{31, BandOverCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Classify(tt.value), "value %v", tt.value)
	}
}

func TestThresholdsClassify_NonAscending(t *testing.T) {
	// Checked in order, never reordered: the optimal check wins first.
	th := Thresholds{Optimal: 50, Marginal: 10, Critical: 20}

	assert.False(t, th.Ascending())
	assert.Equal(t, BandOptimal, th.Classify(15))
	assert.Equal(t, BandOverCritical, th.Classify(60))
}

func TestPaletteColor(t *testing.T) {
	p := Palette{Optimal: "green", Marginal: "orange", Critical: "red", Default: "gray"}

	assert.Equal(t, "green", p.Color(BandOptimal))
	assert.Equal(t, "orange", p.Color(BandMarginal))
	assert.Equal(t, "red", p.Color(BandCritical))
	assert.Equal(t, "red", p.Color(BandOverCritical))
	assert.Equal(t, "gray", p.Color(BandNone))
}

func TestBandString(t *testing.T) {
	assert.Equal(t, "none", BandNone.String())
	assert.Equal(t, "optimal", BandOptimal.String())
	assert.Equal(t, "over-critical", BandOverCritical.String())
}

func TestSettingsPalette(t *testing.T) {
	s := DefaultSettings()
	p := s.Palette()
	assert.Equal(t, FallbackBackground, p.Default)
	assert.Equal(t, DefaultOptimalColor, p.Optimal)

	s.BackgroundColor = "#112233"
	s.CriticalColor = ""
	p = s.Palette()
	assert.Equal(t, "#112233", p.Default)
	assert.Equal(t, DefaultCriticalColor, p.Critical)
}
