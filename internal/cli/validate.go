package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/rileyhilliard/beacon/pkg/sshutil"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

// validateCmd checks the page config without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the page config for problems",
	Long: `Load .beacon.yaml, check every widget, and print the page as a tree with
any problems attached to the widget they belong to.

Errors stop 'beacon run' from starting; warnings are shown but the page
still runs. Exits non-zero when there are errors.

Examples:
  beacon validate
  beacon validate --config ~/status.yaml
  beacon validate --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCommand(cmd.OutOrStdout(), sshutil.ConfigPath())
	},
}

func init() {
	validateCmd.Flags().BoolVar(&machineMode, "json", false, "output the report as JSON")
}

// validateResult is the --json payload.
type validateResult struct {
	Path    string          `json:"path,omitempty"`
	Valid   bool            `json:"valid"`
	Widgets []widgetSummary `json:"widgets"`
	Issues  []issueSummary  `json:"issues"`
}

type widgetSummary struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
	Source string `json:"source,omitempty"`
}

type issueSummary struct {
	Severity   string `json:"severity"`
	Widget     string `json:"widget,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func validateCommand(out io.Writer, sshConfig string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		if machineMode {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}

	report := config.Check(cfg)

	if machineMode {
		result := summarize(cfg, path, report)
		if !result.Valid {
			errs := report.Errors()
			_ = WriteJSONError(out, ErrCodeConfigInvalid,
				fmt.Sprintf("%d problem(s) in the page config", len(errs)),
				errs[0].Suggestion, result)
			return errors.NewExitError(1)
		}
		return WriteJSONSuccess(out, result)
	}

	fmt.Fprint(out, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "config check",
		Config:  orNone(path),
	}))
	fmt.Fprintln(out)
	fmt.Fprint(out, renderPageTree(cfg, report, sshConfig))
	fmt.Fprintln(out)
	fmt.Fprintln(out, reportSummary(report))

	if report.HasErrors() {
		return errors.NewExitError(1)
	}
	return nil
}

func summarize(cfg *config.Config, path string, report config.Report) validateResult {
	res := validateResult{
		Path:    path,
		Valid:   !report.HasErrors(),
		Widgets: make([]widgetSummary, 0, len(cfg.Widgets)),
		Issues:  make([]issueSummary, 0, len(report.Issues)),
	}
	for _, w := range cfg.Widgets {
		ws := widgetSummary{ID: w.ID, Type: w.Type, Label: w.Label}
		if w.IsIndicator() && w.Indicator != nil {
			ws.Source = w.Indicator.Source
		}
		res.Widgets = append(res.Widgets, ws)
	}
	for _, is := range report.Issues {
		res.Issues = append(res.Issues, issueSummary{
			Severity:   is.Severity.String(),
			Widget:     is.Widget,
			Message:    is.Message,
			Suggestion: is.Suggestion,
		})
	}
	return res
}

// renderPageTree draws the page as a tree: one branch per widget, with its
// settings and issues as leaves.
func renderPageTree(cfg *config.Config, report config.Report, sshConfig string) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("Page (%d widgets, interval %s)", len(cfg.Widgets), cfg.Interval))

	for _, is := range report.ForWidget("") {
		tree.AddNode(issueNode(is))
	}

	for _, w := range cfg.Widgets {
		if w.ID == "" {
			continue
		}
		branch := tree.AddBranch(widgetNode(w))
		for _, line := range widgetDetails(cfg, w, sshConfig) {
			branch.AddNode(ui.MutedStyle().Render(line))
		}
		for _, is := range report.ForWidget(w.ID) {
			branch.AddNode(issueNode(is))
		}
	}
	return tree.String()
}

func widgetNode(w config.Widget) string {
	name := lipgloss.NewStyle().Bold(true).Render(w.ID)
	kind := ui.MutedStyle().Render(orUnset(w.Type))
	if w.Label != "" && w.Label != w.ID {
		return fmt.Sprintf("%s %s (%s)", name, kind, w.Label)
	}
	return fmt.Sprintf("%s %s", name, kind)
}

// widgetDetails lists the settings that tell widgets apart. Credentials in
// DSNs and headers are never shown.
func widgetDetails(cfg *config.Config, w config.Widget, sshConfig string) []string {
	var out []string
	switch w.Type {
	case config.TypeStatic:
		out = append(out, "value: "+ui.Truncate(w.Value, 40))
	case config.TypeFile:
		out = append(out, "path: "+w.Path)
	case config.TypeCommand:
		out = append(out, "command: "+ui.Truncate(w.Command, 50))
	case config.TypeSSH:
		host := "host: " + w.Host
		if entry, ok := sshutil.LookupHost(sshConfig, w.Host); ok {
			host += " (" + entry.Description() + ")"
		} else if w.Host != "" {
			host += " (not in ssh config)"
		}
		out = append(out, host, "command: "+ui.Truncate(w.Command, 50))
	case config.TypeHTTP:
		out = append(out, "url: "+w.URL)
	case config.TypePrometheus:
		metric := "metric: " + w.Metric
		if len(w.Labels) > 0 {
			metric += " " + formatLabels(w.Labels)
		}
		out = append(out, "url: "+w.URL, metric)
	case config.TypeSQLite:
		out = append(out, "path: "+w.Path, "query: "+ui.Truncate(w.Query, 50))
	case config.TypePostgres:
		out = append(out, "query: "+ui.Truncate(w.Query, 50))
	case config.TypeIndicator:
		out = append(out, indicatorDetails(cfg, w)...)
	}
	if w.Timeout > 0 {
		out = append(out, "timeout: "+w.Timeout.String())
	}
	return out
}

func indicatorDetails(cfg *config.Config, w config.Widget) []string {
	if w.Indicator == nil || w.Indicator.Source == "" {
		return []string{"source: none"}
	}
	s := w.Indicator.Resolve()
	src := "source: " + s.Source
	if target, ok := cfg.Widget(s.Source); ok {
		src += " (" + target.Type + ")"
	}
	th := s.Thresholds
	return []string{
		src,
		fmt.Sprintf("thresholds: %s / %s / %s", ui.FormatValue(th.Optimal), ui.FormatValue(th.Marginal), ui.FormatValue(th.Critical)),
		fmt.Sprintf("colors: %s / %s / %s", s.OptimalColor, s.MarginalColor, s.CriticalColor),
	}
}

func issueNode(is config.Issue) string {
	style, symbol := ui.ErrorStyle(), ui.SymbolFail
	if is.Severity == config.SeverityWarning {
		style, symbol = ui.WarningStyle(), ui.SymbolWarning
	}
	text := symbol + " " + is.Message
	if is.Suggestion != "" {
		text += ui.MutedStyle().Render(" (" + is.Suggestion + ")")
	}
	return style.Render(text)
}

func reportSummary(r config.Report) string {
	errs, warns := len(r.Errors()), len(r.Warnings())
	switch {
	case errs > 0:
		return ui.ErrorStyle().Render(fmt.Sprintf("%s %s, %s", ui.SymbolFail, plural(errs, "error"), plural(warns, "warning")))
	case warns > 0:
		return ui.WarningStyle().Render(fmt.Sprintf("%s Config is valid with %s", ui.SymbolSuccess, plural(warns, "warning")))
	default:
		return ui.SuccessStyle().Render(ui.SymbolSuccess + " Config is valid")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, labels[k]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func orUnset(s string) string {
	if s == "" {
		return "(no type)"
	}
	return s
}
