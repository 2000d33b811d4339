package config

import (
	"time"

	"github.com/rileyhilliard/beacon/internal/indicator"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Page-wide timing defaults.
const (
	DefaultInterval = indicator.DefaultInterval
	MinInterval     = 100 * time.Millisecond
	DefaultTimeout  = indicator.DefaultReadTimeout
)

// Widget types.
const (
	TypeStatic     = "static"
	TypeFile       = "file"
	TypeCommand    = "command"
	TypeSSH        = "ssh"
	TypeHTTP       = "http"
	TypePrometheus = "prometheus"
	TypeSQLite     = "sqlite"
	TypePostgres   = "postgres"
	TypeIndicator  = "indicator"
)

// SourceTypes lists every widget type that produces a value, in display order.
var SourceTypes = []string{
	TypeStatic, TypeFile, TypeCommand, TypeSSH,
	TypeHTTP, TypePrometheus, TypeSQLite, TypePostgres,
}

// Config represents the complete .beacon.yaml file: one page of widgets.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is how often indicators sample their source.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Timeout bounds a single source read.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Widgets are laid out in the order given.
	Widgets []Widget `yaml:"widgets" mapstructure:"widgets"`
}

// LogConfig controls the optional log file. The TUI never logs to the terminal.
type LogConfig struct {
	// File is the log path. Empty disables file logging.
	File string `yaml:"file" mapstructure:"file"`

	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	MaxSizeMB  int `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`
}

// Widget is one entry on the page. Which fields apply depends on Type.
type Widget struct {
	ID    string `yaml:"id" mapstructure:"id"`
	Label string `yaml:"label,omitempty" mapstructure:"label"`
	Type  string `yaml:"type" mapstructure:"type"`

	Value   string            `yaml:"value,omitempty" mapstructure:"value"`     // static
	Path    string            `yaml:"path,omitempty" mapstructure:"path"`       // file, sqlite
	Command string            `yaml:"command,omitempty" mapstructure:"command"` // command, ssh
	Host    string            `yaml:"host,omitempty" mapstructure:"host"`       // ssh
	URL     string            `yaml:"url,omitempty" mapstructure:"url"`         // http, prometheus
	Headers map[string]string `yaml:"headers,omitempty" mapstructure:"headers"` // http
	Metric  string            `yaml:"metric,omitempty" mapstructure:"metric"`   // prometheus
	Labels  map[string]string `yaml:"labels,omitempty" mapstructure:"labels"`   // prometheus
	DSN     string            `yaml:"dsn,omitempty" mapstructure:"dsn"`         // postgres
	Query   string            `yaml:"query,omitempty" mapstructure:"query"`     // sqlite, postgres

	// Timeout overrides the page timeout for this widget's reads.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`

	Indicator *IndicatorConfig `yaml:"indicator,omitempty" mapstructure:"indicator"`
}

// DisplayName returns the label, or the id when no label is set.
func (w Widget) DisplayName() string {
	if w.Label != "" {
		return w.Label
	}
	return w.ID
}

// IsIndicator reports whether the widget is an indicator.
func (w Widget) IsIndicator() bool {
	return w.Type == TypeIndicator
}

// IndicatorConfig is the persisted form of indicator settings. Nil pointers
// and empty strings mean "not set" so defaults can cascade.
type IndicatorConfig struct {
	Icon            string   `yaml:"icon,omitempty" mapstructure:"icon"`
	IconColor       string   `yaml:"icon_color,omitempty" mapstructure:"icon_color"`
	BackgroundColor string   `yaml:"background_color,omitempty" mapstructure:"background_color"`
	StrokeColor     string   `yaml:"stroke_color,omitempty" mapstructure:"stroke_color"`
	StrokeWidth     *float64 `yaml:"stroke_width,omitempty" mapstructure:"stroke_width"`

	OptimalColor  string `yaml:"optimal_color,omitempty" mapstructure:"optimal_color"`
	MarginalColor string `yaml:"marginal_color,omitempty" mapstructure:"marginal_color"`
	CriticalColor string `yaml:"critical_color,omitempty" mapstructure:"critical_color"`

	OptimalThreshold  *float64 `yaml:"optimal_threshold,omitempty" mapstructure:"optimal_threshold"`
	MarginalThreshold *float64 `yaml:"marginal_threshold,omitempty" mapstructure:"marginal_threshold"`
	CriticalThreshold *float64 `yaml:"critical_threshold,omitempty" mapstructure:"critical_threshold"`

	IconWidth    *float64 `yaml:"icon_width,omitempty" mapstructure:"icon_width"`
	IconHeight   *float64 `yaml:"icon_height,omitempty" mapstructure:"icon_height"`
	Padding      *float64 `yaml:"padding,omitempty" mapstructure:"padding"`
	Margin       *float64 `yaml:"margin,omitempty" mapstructure:"margin"`
	BorderRadius *float64 `yaml:"border_radius,omitempty" mapstructure:"border_radius"`
	Alignment    string   `yaml:"alignment,omitempty" mapstructure:"alignment"`

	// Source is the id of the widget to poll.
	Source string `yaml:"source,omitempty" mapstructure:"source"`
}

// Resolve applies defaults and returns runtime settings. A nil receiver
// yields the defaults with no source.
func (c *IndicatorConfig) Resolve() indicator.Settings {
	s := indicator.DefaultSettings()
	if c == nil {
		return s
	}

	s.Icon = orDefault(c.Icon, s.Icon)
	s.IconColor = orDefault(c.IconColor, s.IconColor)
	s.BackgroundColor = c.BackgroundColor
	s.StrokeColor = orDefault(c.StrokeColor, s.StrokeColor)
	s.StrokeWidth = deref(c.StrokeWidth)

	s.OptimalColor = orDefault(c.OptimalColor, s.OptimalColor)
	s.MarginalColor = orDefault(c.MarginalColor, s.MarginalColor)
	s.CriticalColor = orDefault(c.CriticalColor, s.CriticalColor)

	s.Thresholds = indicator.ResolveThresholds(c.OptimalThreshold, c.MarginalThreshold, c.CriticalThreshold)

	s.IconWidth = c.IconWidth
	s.IconHeight = c.IconHeight
	s.Padding = deref(c.Padding)
	s.Margin = deref(c.Margin)
	s.BorderRadius = deref(c.BorderRadius)
	s.Alignment = orDefault(c.Alignment, s.Alignment)

	s.Source = c.Source
	return s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Float returns a pointer to v, for building IndicatorConfig literals.
func Float(v float64) *float64 {
	return &v
}

// Widget returns the widget with the given id.
func (c *Config) Widget(id string) (Widget, bool) {
	for _, w := range c.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Sources returns the non-indicator widgets in page order.
func (c *Config) Sources() []Widget {
	var out []Widget
	for _, w := range c.Widgets {
		if !w.IsIndicator() {
			out = append(out, w)
		}
	}
	return out
}

// Indicators returns the indicator widgets in page order.
func (c *Config) Indicators() []Widget {
	var out []Widget
	for _, w := range c.Widgets {
		if w.IsIndicator() {
			out = append(out, w)
		}
	}
	return out
}

// ReadTimeout returns the effective per-read timeout for w.
func (c *Config) ReadTimeout(w Widget) time.Duration {
	if w.Timeout > 0 {
		return w.Timeout
	}
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// DefaultConfig returns an empty page with default timing.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Log:      LogConfig{Level: "info"},
	}
}
