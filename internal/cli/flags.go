package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/spf13/cobra"
)

// PageFlags holds the flags shared by commands that run a page.
type PageFlags struct {
	Interval string
	Timeout  string
}

// AddPageFlags registers --interval and --timeout on a command.
func AddPageFlags(cmd *cobra.Command, flags *PageFlags) {
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "override the page sample interval (e.g., 500ms, 2s)")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "", "override the per-read timeout (e.g., 2s)")
}

// Apply parses the flags and overrides the matching config values.
func (f PageFlags) Apply(cfg *config.Config) error {
	interval, err := ParseInterval(f.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Interval = interval
	}

	timeout, err := parseDurationFlag("timeout", f.Timeout)
	if err != nil {
		return err
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return nil
}

// ParseInterval parses an --interval value. Empty returns zero, meaning
// "keep the configured interval".
func ParseInterval(flag string) (time.Duration, error) {
	d, err := parseDurationFlag("interval", flag)
	if err != nil {
		return 0, err
	}
	if flag != "" && d < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", flag),
			fmt.Sprintf("The minimum interval is %s", config.MinInterval))
	}
	return d, nil
}

func parseDurationFlag(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid %s", flag, name),
			"Try something like 500ms, 2s, or 1m.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("The %s can't be negative", name),
			"Use a positive duration like 2s")
	}
	return d, nil
}
