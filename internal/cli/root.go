package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	configFlag  string
	noColorFlag bool
	logFileFlag string
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Threshold status lights for your terminal",
	Long: `beacon shows a page of value widgets and status indicators.

Value widgets read text from a file, a command, an SSH host, an HTTP or
Prometheus endpoint, or a SQLite/Postgres query. Indicators sample another
widget's value on an interval and color their box by which threshold band
the number falls in.

The page is described in .beacon.yaml, found in the current directory or a
parent, or in ~/.config/beacon/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			disableColor()
		}
	},
}

func init() {
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: search for .beacon.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "write logs to this file (overrides log.file)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log at debug level")
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			err = unknownCommandError(name)
		}
	}

	fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(renderError(err)))
	os.Exit(1)
}

func disableColor() {
	ui.DisableColors()
	color.NoColor = true
}

// isTerminal reports whether w is a terminal. Non-file writers never are.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderError formats err for the terminal. Structured errors already carry
// their own layout.
func renderError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Error()
	}
	return ui.SymbolFail + " " + err.Error()
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "beacon"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func unknownCommandError(name string) error {
	suggestion := "Run 'beacon --help' to see available commands"
	if similar := rootCmd.SuggestionsFor(name); len(similar) > 0 {
		suggestion = fmt.Sprintf("Did you mean '%s'?", similar[0])
	}
	return errors.New(errors.ErrConfig, fmt.Sprintf("Unknown command '%s'", name), suggestion)
}

// loadConfig finds and loads the page config, honoring --config.
func loadConfig() (*config.Config, string, error) {
	return config.LoadOrDefault(configFlag)
}

// openLogger returns the logger for a page. Logs only ever go to a file: the
// --log-file flag, or log.file from the config. Without one, logging is off.
// The returned closer is never nil.
func openLogger(cfg *config.Config) (logger.Logger, io.Closer, error) {
	path := cfg.Log.File
	if logFileFlag != "" {
		path = config.ExpandTilde(logFileFlag)
	}
	if path == "" {
		return logger.Noop(), io.NopCloser(nil), nil
	}

	level := cfg.Log.Level
	if debugFlag {
		level = "debug"
	}
	log, closer, err := logger.NewFile(logger.FileOptions{
		Path:       path,
		Level:      level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't open log file %s", path),
			"Check the directory is writable, or drop --log-file")
	}
	return log, closer, nil
}
