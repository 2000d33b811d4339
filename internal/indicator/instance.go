package indicator

import (
	"context"
	"math"
)

// Instance is one mounted indicator: its settings, its poller, and the last
// classification and layout it committed. Apart from the poller, which runs its
// own goroutine, an Instance is owned by a single goroutine (the UI update
// loop) and is not safe for concurrent use.
type Instance struct {
	id       string
	settings Settings
	poller   *Poller

	bounds  Bounds
	sizer   Sizer
	outcome Outcome
	// background is what the box is painted with right now.
	background string

	mounted   bool
	observing bool
}

// NewInstance creates an unmounted indicator. Readings taken by its poller are
// handed to sink and must be fed back through Apply on the owning goroutine.
func NewInstance(id string, s Settings, provider Provider, sink Sink, opts ...PollerOption) *Instance {
	return &Instance{
		id:       id,
		settings: s,
		poller:   NewPoller(id, provider, sink, opts...),
		outcome:  emptyOutcome(),
	}
}

func emptyOutcome() Outcome {
	return Outcome{Value: math.NaN(), Band: BandNone}
}

// ID returns the widget id.
func (in *Instance) ID() string { return in.id }

// Settings returns the current settings.
func (in *Instance) Settings() Settings { return in.settings }

// Mount starts observing size and, when a source is set, polling it.
// Mounting twice is a no-op.
func (in *Instance) Mount(ctx context.Context) {
	if in.mounted {
		return
	}
	in.mounted = true
	in.observing = true
	in.background = in.settings.BackgroundColor
	in.outcome = emptyOutcome()
	in.resize()
	in.poller.Start(ctx, in.settings.Source)
}

// Configure replaces the settings. A changed source restarts polling, so the
// old timer is gone before the new one exists. The size is recomputed since
// padding or icon dimensions may have changed.
func (in *Instance) Configure(ctx context.Context, s Settings) {
	prev := in.settings
	in.settings = s
	if !in.mounted {
		return
	}

	if prev.Source != s.Source {
		in.outcome = emptyOutcome()
		in.background = s.BackgroundColor
		in.poller.Start(ctx, s.Source)
	} else if !in.outcome.Classified() && in.outcome.At.IsZero() {
		// Nothing sampled yet; keep showing the configured background.
		in.background = s.BackgroundColor
	}
	in.resize()
}

// Resize records new container bounds and reports whether the committed icon
// size changed. It is ignored when the instance is not observing.
func (in *Instance) Resize(b Bounds) bool {
	if !in.observing {
		return false
	}
	in.bounds = b
	return in.resize()
}

func (in *Instance) resize() bool {
	s := in.settings
	return in.sizer.Update(ComputeSize(in.bounds, s.Padding, s.IconWidth, s.IconHeight))
}

// Apply classifies a reading with the current settings and commits the
// resulting color. Readings for another widget, from a superseded run, or
// arriving after Unmount are dropped. It reports whether the reading was used.
func (in *Instance) Apply(r Reading) bool {
	if !in.mounted || r.WidgetID != in.id || !in.poller.Current(r.Generation) {
		return false
	}
	o := Evaluate(in.settings, r.Text, r.Err)
	o.At = r.At
	in.outcome = o
	in.background = o.Color
	return true
}

// Unmount stops polling and size observation and drops layout state. Once it
// returns no further readings are produced for this instance.
func (in *Instance) Unmount() {
	in.poller.Stop()
	in.mounted = false
	in.observing = false
	in.sizer.Reset()
	in.bounds = Bounds{}
	in.outcome = emptyOutcome()
}

// Background returns the current box color. Empty means transparent.
func (in *Instance) Background() string { return in.background }

// IconSize returns the committed icon side in layout units.
func (in *Instance) IconSize() float64 { return in.sizer.Size() }

// Bounds returns the last observed container bounds.
func (in *Instance) Bounds() Bounds { return in.bounds }

// Outcome returns the last applied classification.
func (in *Instance) Outcome() Outcome { return in.outcome }

// Mounted reports whether the instance is mounted.
func (in *Instance) Mounted() bool { return in.mounted }

// Polling reports whether a poll run is live.
func (in *Instance) Polling() bool { return in.poller.Active() }

// Observing reports whether size changes are tracked.
func (in *Instance) Observing() bool { return in.observing }

// Generation identifies the current poll run; readings tagged with an older
// generation are ignored.
func (in *Instance) Generation() uint64 { return in.poller.Generation() }

// Alignment returns the parsed placement of the icon box.
func (in *Instance) Alignment() Alignment { return ParseAlignment(in.settings.Alignment) }
