package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/spf13/cobra"
)

// configureCmd edits one indicator's settings interactively
var configureCmd = &cobra.Command{
	Use:   "configure <indicator-id>",
	Short: "Edit an indicator's settings",
	Long: `Open a form with every setting of one indicator: its source, the three
thresholds and band colors, and how the icon box looks. Saving rewrites only
that indicator's block in the config file; comments elsewhere are kept.

A running 'beacon run' picks up the change on its own.

Examples:
  beacon configure cpu-light`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configureCommand(cmd.OutOrStdout(), args[0])
	},
}

func configureCommand(out io.Writer, id string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to edit",
			"Create .beacon.yaml first, or point at one with --config")
	}

	w, err := findIndicator(cfg, id)
	if err != nil {
		return err
	}

	if !isTerminal(os.Stdin) {
		return errors.New(errors.ErrUI,
			"beacon configure needs a terminal",
			fmt.Sprintf("Edit the '%s' block in %s by hand", id, path))
	}

	values := formFromConfig(w.Indicator)
	form := indicatorForm(&values, sourceOptions(cfg, id))
	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrUI,
			"Failed to get user input",
			"Check terminal compatibility, or edit the config file by hand")
	}

	ic, err := values.Config()
	if err != nil {
		return err
	}
	if err := config.SaveIndicator(path, id, ic); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Saved %s to %s\n", ui.SymbolSuccess, id, path)
	return nil
}

// findIndicator returns widget id, which must be an indicator.
func findIndicator(cfg *config.Config, id string) (config.Widget, error) {
	w, ok := cfg.Widget(id)
	if !ok {
		return config.Widget{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("No widget '%s' on this page", id),
			"Run 'beacon validate' to list the page's widgets")
	}
	if !w.IsIndicator() {
		return config.Widget{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Widget '%s' is a %s widget, not an indicator", id, w.Type),
			"Only widgets with type: indicator can be configured")
	}
	return w, nil
}

// indicatorValues holds the form's text fields. Empty means "not set".
type indicatorValues struct {
	Source    string
	Alignment string

	OptimalThreshold  string
	MarginalThreshold string
	CriticalThreshold string

	OptimalColor  string
	MarginalColor string
	CriticalColor string

	Icon            string
	IconColor       string
	BackgroundColor string
	StrokeColor     string
	StrokeWidth     string

	IconWidth    string
	IconHeight   string
	Padding      string
	Margin       string
	BorderRadius string
}

func formFromConfig(ic *config.IndicatorConfig) indicatorValues {
	if ic == nil {
		ic = &config.IndicatorConfig{}
	}
	return indicatorValues{
		Source:            ic.Source,
		Alignment:         ic.Alignment,
		OptimalThreshold:  formatOptional(ic.OptimalThreshold),
		MarginalThreshold: formatOptional(ic.MarginalThreshold),
		CriticalThreshold: formatOptional(ic.CriticalThreshold),
		OptimalColor:      ic.OptimalColor,
		MarginalColor:     ic.MarginalColor,
		CriticalColor:     ic.CriticalColor,
		Icon:              ic.Icon,
		IconColor:         ic.IconColor,
		BackgroundColor:   ic.BackgroundColor,
		StrokeColor:       ic.StrokeColor,
		StrokeWidth:       formatOptional(ic.StrokeWidth),
		IconWidth:         formatOptional(ic.IconWidth),
		IconHeight:        formatOptional(ic.IconHeight),
		Padding:           formatOptional(ic.Padding),
		Margin:            formatOptional(ic.Margin),
		BorderRadius:      formatOptional(ic.BorderRadius),
	}
}

// Config converts the form back to the persisted shape.
func (v indicatorValues) Config() (config.IndicatorConfig, error) {
	ic := config.IndicatorConfig{
		Source:          strings.TrimSpace(v.Source),
		Alignment:       strings.TrimSpace(v.Alignment),
		OptimalColor:    strings.TrimSpace(v.OptimalColor),
		MarginalColor:   strings.TrimSpace(v.MarginalColor),
		CriticalColor:   strings.TrimSpace(v.CriticalColor),
		Icon:            strings.TrimSpace(v.Icon),
		IconColor:       strings.TrimSpace(v.IconColor),
		BackgroundColor: strings.TrimSpace(v.BackgroundColor),
		StrokeColor:     strings.TrimSpace(v.StrokeColor),
	}

	numbers := []struct {
		name string
		text string
		dst  **float64
		min  bool // must be >= 0
	}{
		{"optimal_threshold", v.OptimalThreshold, &ic.OptimalThreshold, false},
		{"marginal_threshold", v.MarginalThreshold, &ic.MarginalThreshold, false},
		{"critical_threshold", v.CriticalThreshold, &ic.CriticalThreshold, false},
		{"stroke_width", v.StrokeWidth, &ic.StrokeWidth, true},
		{"icon_width", v.IconWidth, &ic.IconWidth, true},
		{"icon_height", v.IconHeight, &ic.IconHeight, true},
		{"padding", v.Padding, &ic.Padding, true},
		{"margin", v.Margin, &ic.Margin, true},
		{"border_radius", v.BorderRadius, &ic.BorderRadius, true},
	}
	for _, n := range numbers {
		f, err := parseOptional(n.text, n.min)
		if err != nil {
			return config.IndicatorConfig{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("%s: %v", n.name, err), "Leave it empty to use the default")
		}
		*n.dst = f
	}
	return ic, nil
}

// indicatorForm builds the editor: what is polled, then bands, then looks.
func indicatorForm(v *indicatorValues, sources []huh.Option[string]) *huh.Form {
	alignments := []huh.Option[string]{huh.NewOption("default (center)", "")}
	for _, t := range indicator.AlignmentTokens {
		alignments = append(alignments, huh.NewOption(t, t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source").
				Description("The widget whose value is sampled").
				Options(sources...).
				Value(&v.Source),
			thresholdInput("Optimal threshold", "At or below this the box is optimal (default 0)", &v.OptimalThreshold),
			thresholdInput("Marginal threshold", "At or below this it is marginal (default: optimal)", &v.MarginalThreshold),
			thresholdInput("Critical threshold", "At or below this it is critical (default: marginal)", &v.CriticalThreshold),
		),
		huh.NewGroup(
			colorInput("Optimal color", indicator.DefaultOptimalColor, &v.OptimalColor),
			colorInput("Marginal color", indicator.DefaultMarginalColor, &v.MarginalColor),
			colorInput("Critical color", indicator.DefaultCriticalColor, &v.CriticalColor),
			colorInput("Background color", "transparent until the first reading", &v.BackgroundColor),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Icon").
				Placeholder(indicator.DefaultIcon).
				Value(&v.Icon),
			colorInput("Icon color", indicator.DefaultIconColor, &v.IconColor),
			colorInput("Stroke color", indicator.DefaultStrokeColor, &v.StrokeColor),
			sizeInput("Stroke width", &v.StrokeWidth),
			huh.NewSelect[string]().
				Title("Alignment").
				Options(alignments...).
				Value(&v.Alignment),
		),
		huh.NewGroup(
			sizeInput("Icon width", &v.IconWidth),
			sizeInput("Icon height", &v.IconHeight),
			sizeInput("Padding", &v.Padding),
			sizeInput("Margin", &v.Margin),
			sizeInput("Border radius", &v.BorderRadius),
		),
	)
}

func thresholdInput(title, desc string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(desc).
		Value(value).
		Validate(func(s string) error {
			_, err := parseOptional(s, false)
			return err
		})
}

func sizeInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("default").
		Value(value).
		Validate(func(s string) error {
			_, err := parseOptional(s, true)
			return err
		})
}

func colorInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateColor)
}

func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || ui.ValidColor(s) {
		return nil
	}
	return fmt.Errorf("'%s' isn't a color; use a name, #rrggbb, or 0-255", s)
}

// sourceOptions lists every other widget, value widgets first, after "none".
func sourceOptions(cfg *config.Config, self string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("none (don't poll)", "")}
	var indicators []huh.Option[string]
	for _, w := range cfg.Widgets {
		if w.ID == self {
			continue
		}
		opt := huh.NewOption(fmt.Sprintf("%s (%s)", w.ID, w.Type), w.ID)
		if w.IsIndicator() {
			indicators = append(indicators, opt)
			continue
		}
		opts = append(opts, opt)
	}
	return append(opts, indicators...)
}

func parseOptional(s string, nonNegative bool) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("'%s' isn't a number", s)
	}
	if nonNegative && f < 0 {
		return nil, fmt.Errorf("can't be negative")
	}
	return &f, nil
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
