package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/monitor"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/spf13/cobra"
)

var (
	watchFlags PageFlags
	watchOnce  bool
)

// watchCmd prints widget changes as lines
var watchCmd = &cobra.Command{
	Use:   "watch [widget-id...]",
	Short: "Print widget changes as they happen",
	Long: `Run the page without a screen, printing one line each time a widget's
value or an indicator's band changes. Useful in logs, pipes and CI.

With widget ids, only those widgets are printed. With --once, beacon prints
each widget's first reading and exits.

Examples:
  beacon watch
  beacon watch cpu-light disk-light
  beacon watch --once --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.OutOrStdout(), args, watchFlags, watchOnce)
	},
}

func init() {
	AddPageFlags(watchCmd, &watchFlags)
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "print each widget's first reading and exit")
	watchCmd.Flags().BoolVar(&machineMode, "json", false, "print one JSON object per line")
}

// watchEvent is one printed change. Value is nil when nothing was parsed.
type watchEvent struct {
	Time   time.Time `json:"time"`
	Widget string    `json:"widget"`
	Type   string    `json:"type"`
	Text   string    `json:"text,omitempty"`
	Value  *float64  `json:"value,omitempty"`
	Band   string    `json:"band,omitempty"`
	Color  string    `json:"color,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// key identifies what is visible, so unchanged readings are not reprinted.
func (e watchEvent) key() string {
	v := "-"
	if e.Value != nil {
		v = fmt.Sprint(*e.Value)
	}
	return strings.Join([]string{e.Text, v, e.Band, e.Color, e.Error}, "\x00")
}

// watchOptions controls a watch loop.
type watchOptions struct {
	IDs   []string // empty means every widget
	Once  bool
	JSON  bool
	Color bool
}

func watchCommand(out io.Writer, ids []string, flags PageFlags, once bool) error {
	s, err := openSession(flags)
	if err != nil {
		if machineMode {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reloads := make(chan *config.Config, 1)
	s.watchConfig(ctx, flags, func(cfg *config.Config) {
		select {
		case reloads <- cfg:
		case <-ctx.Done():
		}
	})

	opts := watchOptions{
		IDs:   ids,
		Once:  once,
		JSON:  machineMode,
		Color: !color.NoColor && isTerminal(out),
	}
	return watchLoop(ctx, s.page, out, opts, reloads)
}

// watchLoop mounts page and prints changes until ctx is done or, with Once,
// every selected widget has been printed. It owns the page: readings and
// reloads are applied from this goroutine only.
func watchLoop(ctx context.Context, page *monitor.Page, out io.Writer, opts watchOptions, reloads <-chan *config.Config) error {
	selected, err := selectWidgets(page.Config(), opts.IDs)
	if err != nil {
		return err
	}

	page.Mount(ctx)
	defer page.Unmount()

	p := newPrinter(out, opts)
	pending := make(map[string]bool)
	for id := range selected {
		pending[id] = true
	}

	// Indicators with no source never produce a reading; report them now.
	for _, w := range page.Config().Indicators() {
		if !selected[w.ID] {
			continue
		}
		if in, ok := page.Indicator(w.ID); ok && in.Settings().Source == "" {
			if err := p.print(indicatorEvent(w, in, time.Now())); err != nil {
				return err
			}
			delete(pending, w.ID)
		}
	}

	for {
		if opts.Once && len(pending) == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil

		case cfg := <-reloads:
			page.Reload(cfg)
			if len(opts.IDs) == 0 {
				selected, _ = selectWidgets(cfg, nil)
			}

		case r := <-page.Readings():
			if !page.Handle(r) || !selected[r.WidgetID] {
				continue
			}
			w, ok := page.Config().Widget(r.WidgetID)
			if !ok {
				continue
			}
			var ev watchEvent
			if w.IsIndicator() {
				in, _ := page.Indicator(w.ID)
				ev = indicatorEvent(w, in, r.At)
			} else {
				snap, _ := page.Snapshot(w.ID)
				ev = sourceEvent(w, snap.Text, snap.Err, r.At)
			}
			if err := p.print(ev); err != nil {
				return err
			}
			delete(pending, w.ID)
		}
	}
}

// selectWidgets resolves the ids to watch. Unknown ids are an error.
func selectWidgets(cfg *config.Config, ids []string) (map[string]bool, error) {
	selected := make(map[string]bool)
	if len(ids) == 0 {
		for _, w := range cfg.Widgets {
			selected[w.ID] = true
		}
		return selected, nil
	}
	for _, id := range ids {
		if _, ok := cfg.Widget(id); !ok {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("No widget '%s' on this page", id),
				"Run 'beacon validate' to list the page's widgets")
		}
		selected[id] = true
	}
	return selected, nil
}

func indicatorEvent(w config.Widget, in *indicator.Instance, at time.Time) watchEvent {
	out := in.Outcome()
	ev := watchEvent{Time: at, Widget: w.ID, Type: w.Type, Color: in.Background()}
	if in.Settings().Source == "" {
		ev.Error = "no source"
		return ev
	}
	if !math.IsNaN(out.Value) {
		v := out.Value
		ev.Value = &v
	}
	if out.Classified() {
		ev.Band = out.Band.String()
	}
	if out.Reason != nil {
		ev.Error = monitor.ErrorSummary(out.Reason)
	}
	return ev
}

func sourceEvent(w config.Widget, text string, err error, at time.Time) watchEvent {
	ev := watchEvent{Time: at, Widget: w.ID, Type: w.Type, Text: text}
	if err != nil {
		ev.Error = monitor.ErrorSummary(err)
	}
	if v, ok := indicator.ParseValue(text); ok && err == nil {
		ev.Value = &v
	}
	return ev
}

// printer writes events, skipping ones that show nothing new.
type printer struct {
	out  io.Writer
	opts watchOptions
	last map[string]string

	muted    *color.Color
	name     *color.Color
	failed   *color.Color
	bandInks map[string]*color.Color
}

func newPrinter(out io.Writer, opts watchOptions) *printer {
	p := &printer{
		out:    out,
		opts:   opts,
		last:   make(map[string]string),
		muted:  color.New(color.FgHiBlack),
		name:   color.New(color.FgHiWhite, color.Bold),
		failed: color.New(color.FgHiRed),
		bandInks: map[string]*color.Color{
			indicator.BandOptimal.String():      color.New(color.FgGreen),
			indicator.BandMarginal.String():     color.New(color.FgHiYellow),
			indicator.BandCritical.String():     color.New(color.FgHiRed),
			indicator.BandOverCritical.String(): color.New(color.FgHiRed, color.Bold),
		},
	}
	if !opts.Color {
		for _, c := range append([]*color.Color{p.muted, p.name, p.failed}, inks(p.bandInks)...) {
			c.DisableColor()
		}
	}
	return p
}

func inks(m map[string]*color.Color) []*color.Color {
	out := make([]*color.Color, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

func (p *printer) print(ev watchEvent) error {
	key := ev.key()
	if prev, ok := p.last[ev.Widget]; ok && prev == key {
		return nil
	}
	p.last[ev.Widget] = key

	if p.opts.JSON {
		return writeJSONLine(p.out, ev)
	}
	_, err := fmt.Fprintln(p.out, p.format(ev))
	return err
}

// format renders an event as one line:
//
//	15:04:05  cpu-light   ● 72.5  marginal  orange
//	15:04:05  load        0.42
func (p *printer) format(ev watchEvent) string {
	var b strings.Builder
	b.WriteString(p.muted.Sprint(ev.Time.Format("15:04:05")))
	b.WriteString("  ")
	b.WriteString(p.name.Sprint(ui.PadRight(ev.Widget, 12)))
	b.WriteString("  ")

	switch {
	case ev.Type == config.TypeIndicator && ev.Band != "":
		ink := p.bandInks[ev.Band]
		b.WriteString(ink.Sprint(ui.SymbolFilled + " " + ui.FormatValue(*ev.Value)))
		b.WriteString("  ")
		b.WriteString(ink.Sprint(ev.Band))
		b.WriteString("  ")
		b.WriteString(p.muted.Sprint(ev.Color))
	case ev.Type == config.TypeIndicator:
		reason := ev.Error
		if reason == "" {
			reason = "n/a"
		}
		b.WriteString(p.muted.Sprint(ui.SymbolSkipped + " " + reason))
		if ev.Color != "" {
			b.WriteString("  ")
			b.WriteString(p.muted.Sprint(ev.Color))
		}
	case ev.Error != "":
		b.WriteString(p.failed.Sprint(ui.SymbolFail + " " + ev.Error))
	default:
		b.WriteString(ui.Truncate(ev.Text, 60))
	}
	return b.String()
}
