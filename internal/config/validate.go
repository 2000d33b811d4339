package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/logger"
)

// Severity ranks a validation issue.
type Severity int

const (
	SeverityError Severity = iota
	// SeverityWarning issues are reported but never stop the page from running.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Issue is one validation finding.
type Issue struct {
	Severity   Severity
	Widget     string // empty for page-level issues
	Message    string
	Suggestion string
}

// Report collects every issue found in a config.
type Report struct {
	Issues []Issue
}

// Errors returns the error-level issues.
func (r Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-level issues.
func (r Report) Warnings() []Issue { return r.filter(SeverityWarning) }

// HasErrors reports whether any issue is an error.
func (r Report) HasErrors() bool { return len(r.Errors()) > 0 }

// ForWidget returns the issues attached to widget id.
func (r Report) ForWidget(id string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Widget == id {
			out = append(out, is)
		}
	}
	return out
}

func (r Report) filter(s Severity) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == s {
			out = append(out, is)
		}
	}
	return out
}

func (r *Report) errorf(widget, suggestion, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{SeverityError, widget, fmt.Sprintf(format, args...), suggestion})
}

func (r *Report) warnf(widget, suggestion, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{SeverityWarning, widget, fmt.Sprintf(format, args...), suggestion})
}

// Validate checks the config and returns the first error as a structured
// error. Warnings never fail validation.
func Validate(cfg *Config) error {
	report := Check(cfg)
	errs := report.Errors()
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	msg := first.Message
	if first.Widget != "" {
		msg = fmt.Sprintf("Widget '%s': %s", first.Widget, first.Message)
	}
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return errors.New(errors.ErrConfig, msg, first.Suggestion)
}

// Check runs every validation rule and returns the full report.
func Check(cfg *Config) Report {
	var r Report

	if cfg.Version > CurrentConfigVersion {
		r.errorf("", "Grab the latest beacon release.",
			"This config is from the future (version %d, but beacon only knows up to %d)", cfg.Version, CurrentConfigVersion)
	}
	if cfg.Interval != 0 && cfg.Interval < MinInterval {
		r.errorf("", "Use 100ms or more; 1s is the default.",
			"interval %s is below the %s minimum", cfg.Interval, MinInterval)
	}
	if cfg.Timeout < 0 {
		r.errorf("", "Remove 'timeout' to use the 5s default.", "timeout can't be negative (got %s)", cfg.Timeout)
	}
	if cfg.Log.Level != "" {
		if !logger.ValidLevel(cfg.Log.Level) {
			r.errorf("", "Use one of: debug, info, warn, error.", "log.level '%s' isn't a level", cfg.Log.Level)
		}
	}

	seen := make(map[string]bool)
	var indicators []Widget
	for i, w := range cfg.Widgets {
		if w.ID == "" {
			r.errorf("", "Give every widget a unique 'id'.", "widget #%d has no id", i+1)
			continue
		}
		if seen[w.ID] {
			r.errorf(w.ID, "Widget ids must be unique on a page.", "duplicate widget id")
			continue
		}
		seen[w.ID] = true
		validateWidget(&r, w)
		if w.IsIndicator() {
			indicators = append(indicators, w)
		}
	}

	for _, w := range indicators {
		validateIndicator(&r, cfg, w)
	}
	return r
}

func validateWidget(r *Report, w Widget) {
	if w.Timeout < 0 {
		r.errorf(w.ID, "Remove it to use the page timeout.", "timeout can't be negative")
	}

	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			r.errorf(w.ID, fmt.Sprintf("Add '%s' to this %s widget.", field, w.Type), "%s widget needs '%s'", w.Type, field)
		}
	}

	switch w.Type {
	case TypeStatic:
	case TypeFile:
		require("path", w.Path)
	case TypeCommand:
		require("command", w.Command)
	case TypeSSH:
		require("host", w.Host)
		require("command", w.Command)
	case TypeHTTP:
		require("url", w.URL)
		validateURL(r, w)
	case TypePrometheus:
		require("url", w.URL)
		require("metric", w.Metric)
		validateURL(r, w)
	case TypeSQLite:
		require("path", w.Path)
		require("query", w.Query)
	case TypePostgres:
		require("dsn", w.DSN)
		require("query", w.Query)
	case TypeIndicator:
		return
	case "":
		r.errorf(w.ID, typeSuggestion(), "widget has no type")
		return
	default:
		r.errorf(w.ID, typeSuggestion(), "unknown widget type '%s'", w.Type)
		return
	}

	if w.Indicator != nil {
		r.warnf(w.ID, "Move the block to a widget with type: indicator.", "'indicator' settings are ignored on a %s widget", w.Type)
	}
}

func typeSuggestion() string {
	types := append([]string{}, SourceTypes...)
	return "Set 'type' to one of: " + strings.Join(append(types, TypeIndicator), ", ")
}

func validateURL(r *Report, w Widget) {
	if w.URL == "" {
		return
	}
	u, err := url.Parse(w.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		r.errorf(w.ID, "Use a full http:// or https:// URL.", "url '%s' isn't a valid http(s) URL", w.URL)
	}
}

func validateIndicator(r *Report, cfg *Config, w Widget) {
	ic := w.Indicator
	if ic == nil {
		r.warnf(w.ID, "Add an 'indicator' block with a 'source'.", "indicator has no settings and will never poll")
		return
	}

	dims := []struct {
		name  string
		value *float64
	}{
		{"stroke_width", ic.StrokeWidth},
		{"icon_width", ic.IconWidth},
		{"icon_height", ic.IconHeight},
		{"padding", ic.Padding},
		{"margin", ic.Margin},
		{"border_radius", ic.BorderRadius},
	}
	for _, d := range dims {
		if d.value != nil && *d.value < 0 {
			r.errorf(w.ID, "Use zero or a positive number.", "%s can't be negative (got %g)", d.name, *d.value)
		}
	}

	if ic.Alignment != "" && !indicator.ValidAlignment(ic.Alignment) {
		r.warnf(w.ID, "Use one of: "+strings.Join(indicator.AlignmentTokens, ", "),
			"alignment '%s' isn't recognized; unknown parts are centered", ic.Alignment)
	}

	th := ic.Resolve().Thresholds
	if !th.Ascending() {
		r.warnf(w.ID, "Order them optimal <= marginal <= critical.",
			"thresholds aren't ascending (%g, %g, %g); they're still checked in order", th.Optimal, th.Marginal, th.Critical)
	}

	switch src, ok := cfg.Widget(ic.Source); {
	case ic.Source == "":
		r.warnf(w.ID, "Set 'source' to the id of a value widget.", "indicator has no source and will never poll")
	case ic.Source == w.ID:
		r.errorf(w.ID, "Point 'source' at a value widget.", "indicator can't use itself as its source")
	case !ok:
		r.warnf(w.ID, "Check the id, or add that widget.", "source '%s' isn't on this page; the box will show its default color", ic.Source)
	case src.IsIndicator():
		r.warnf(w.ID, "Point 'source' at a value widget.", "source '%s' is an indicator and has no value", ic.Source)
	}
}
