package indicator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Polling defaults.
const (
	DefaultInterval    = time.Second
	DefaultReadTimeout = 5 * time.Second
)

// Provider returns the text currently displayed by a source widget.
// Implementations must be safe for concurrent use.
type Provider interface {
	Read(ctx context.Context, sourceID string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, sourceID string) (string, error)

// Read calls f.
func (f ProviderFunc) Read(ctx context.Context, sourceID string) (string, error) {
	return f(ctx, sourceID)
}

// Reading is one raw sample taken by a Poller.
type Reading struct {
	WidgetID   string
	SourceID   string
	Generation uint64
	Text       string
	Err        error
	At         time.Time
}

// Sink receives readings from the poll goroutine. It must return promptly
// once ctx is done.
type Sink func(ctx context.Context, r Reading)

// ChannelSink delivers readings on ch, giving up when the run is cancelled.
func ChannelSink(ch chan<- Reading) Sink {
	return func(ctx context.Context, r Reading) {
		select {
		case ch <- r:
		case <-ctx.Done():
		}
	}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the tick interval. Non-positive values keep the default.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithReadTimeout bounds each provider read. Non-positive values keep the default.
func WithReadTimeout(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// generations numbers runs across all pollers, so a reading can never be
// mistaken for one from a different run, even of a replaced poller.
var generations atomic.Uint64

// Poller owns the sampling timer of one indicator. At most one run is live at
// a time: Start cancels and waits out the previous run before launching the
// next, and Stop returns only after the run's goroutine has exited.
type Poller struct {
	widgetID string
	provider Provider
	sink     Sink
	interval time.Duration
	timeout  time.Duration

	mu     sync.Mutex
	gen    uint64
	source string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates an idle poller for the given widget.
func NewPoller(widgetID string, provider Provider, sink Sink, opts ...PollerOption) *Poller {
	p := &Poller{
		widgetID: widgetID,
		provider: provider,
		sink:     sink,
		interval: DefaultInterval,
		timeout:  DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start stops any live run and, if sourceID is non-empty, begins sampling it:
// once immediately, then every interval until Stop or ctx is cancelled.
func (p *Poller) Start(ctx context.Context, sourceID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if sourceID == "" {
		return
	}

	p.gen = generations.Add(1)
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.source = sourceID
	p.cancel = cancel
	p.done = done

	go p.run(runCtx, p.gen, sourceID, done)
}

// Stop cancels the live run, if any, and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
	p.source = ""
}

// Active reports whether a run is live.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.liveLocked()
}

func (p *Poller) liveLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Generation identifies the most recent run. Zero means never started.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Source returns the source id of the live run, or "".
func (p *Poller) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Current reports whether gen belongs to the live run.
func (p *Poller) Current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.liveLocked() && gen == p.gen
}

// Interval returns the tick interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) run(ctx context.Context, gen uint64, sourceID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sample(ctx, gen, sourceID)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sample(ctx, gen, sourceID)
		}
	}
}

func (p *Poller) sample(ctx context.Context, gen uint64, sourceID string) {
	readCtx, cancel := context.WithTimeout(ctx, p.timeout)
	text, err := p.provider.Read(readCtx, sourceID)
	cancel()

	// Stopped mid-read: deliver nothing.
	if ctx.Err() != nil {
		return
	}

	p.sink(ctx, Reading{
		WidgetID:   p.widgetID,
		SourceID:   sourceID,
		Generation: gen,
		Text:       text,
		Err:        err,
		At:         time.Now(),
	})
}
