package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/monitor"
	"github.com/rileyhilliard/beacon/internal/source"
	"github.com/rileyhilliard/beacon/pkg/sshutil"
	"github.com/spf13/cobra"
)

var runFlags PageFlags

// runCmd opens the full-screen page
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the page in full screen",
	Long: `Open the page described by .beacon.yaml in full screen.

Value widgets show their latest text; indicators color their box by the
band their source's value falls in. Edits to the config file are picked up
while the page is open.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh every source now
  arrows/hjkl Move selection
  Enter       Expand the selected widget
  Esc         Collapse / go back
  ?           Show help

Examples:
  beacon run
  beacon run --config ~/status.yaml
  beacon run --interval 5s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(runFlags)
	},
}

func init() {
	AddPageFlags(runCmd, &runFlags)
}

// session is a loaded, validated page ready to mount.
type session struct {
	cfg    *config.Config
	path   string
	log    logger.Logger
	closer io.Closer
	page   *monitor.Page
}

// openSession loads the config, applies flag overrides, opens the log file
// and builds the page. Close the session when done.
func openSession(flags PageFlags) (*session, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := flags.Apply(cfg); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log, closer, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}

	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	page := monitor.NewPage(cfg, log, source.Options{
		HTTPClient: &http.Client{},
		Dir:        dir,
	})

	log.Info("page loaded from %s: %d widgets, interval %s", orNone(path), len(cfg.Widgets), cfg.Interval)
	return &session{cfg: cfg, path: path, log: log, closer: closer, page: page}, nil
}

func (s *session) Close() {
	if err := s.page.Close(); err != nil {
		s.log.Warn("closing sources: %v", err)
	}
	sshutil.CloseAgent()
	_ = s.closer.Close()
}

// watchConfig reloads the page config on change until ctx is done. Flag
// overrides are re-applied to every reload.
func (s *session) watchConfig(ctx context.Context, flags PageFlags, onChange func(*config.Config)) {
	if s.path == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, s.path, s.log, func(cfg *config.Config) {
			if err := flags.Apply(cfg); err != nil {
				s.log.Warn("ignoring reload: %v", err)
				return
			}
			onChange(cfg)
		})
		if err != nil {
			s.log.Warn("config watch stopped: %v", err)
		}
	}()
}

// runCommand runs the page in the terminal until the user quits.
func runCommand(flags PageFlags) error {
	if !isTerminal(os.Stdout) {
		return errors.New(errors.ErrUI,
			"beacon run needs a terminal",
			"Use 'beacon watch' for output you can pipe or log")
	}

	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.page.Mount(ctx)

	model := monitor.NewModel(s.page, s.path, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	s.watchConfig(ctx, flags, func(cfg *config.Config) {
		p.Send(monitor.ConfigMsg{Config: cfg})
	})

	start := time.Now()
	_, err = p.Run()
	s.log.Info("page closed after %s", time.Since(start).Round(time.Second))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"The page stopped unexpectedly",
			"Run with --log-file to capture details")
	}
	return nil
}

func orNone(path string) string {
	if path == "" {
		return "(no config file)"
	}
	return path
}
