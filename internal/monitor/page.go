package monitor

import (
	"context"
	"sync"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/source"
)

// readingBuffer is how many readings may queue before pollers block.
const readingBuffer = 64

// Page is one running config: the source registry, a poller per source widget
// that keeps its displayed text fresh, and an indicator instance per
// indicator widget. Pollers only do I/O and post readings; every state change
// happens in Handle, Reload, Resize and Close, which must be called from a
// single goroutine.
type Page struct {
	log  logger.Logger
	opts source.Options

	ctx      context.Context
	readings chan indicator.Reading

	mu  sync.RWMutex // guards reg; pollers read through it
	reg *source.Registry

	cfg        *config.Config
	sources    map[string]*indicator.Poller
	indicators map[string]*indicator.Instance
}

// NewPage builds the registry and widgets for cfg. Nothing polls until Mount.
func NewPage(cfg *config.Config, log logger.Logger, opts source.Options) *Page {
	if log == nil {
		log = logger.Noop()
	}
	p := &Page{
		log:        log,
		opts:       opts,
		readings:   make(chan indicator.Reading, readingBuffer),
		cfg:        cfg,
		reg:        source.Build(cfg, log, opts),
		sources:    make(map[string]*indicator.Poller),
		indicators: make(map[string]*indicator.Instance),
	}
	for _, w := range cfg.Sources() {
		p.sources[w.ID] = p.newSourcePoller(w)
	}
	for _, w := range cfg.Indicators() {
		p.indicators[w.ID] = p.newInstance(w)
	}
	return p
}

// Read implements indicator.Provider against the current registry.
func (p *Page) Read(ctx context.Context, sourceID string) (string, error) {
	p.mu.RLock()
	reg := p.reg
	p.mu.RUnlock()
	return reg.Read(ctx, sourceID)
}

func (p *Page) refresh(ctx context.Context, sourceID string) (string, error) {
	p.mu.RLock()
	reg := p.reg
	p.mu.RUnlock()
	snap := reg.Refresh(ctx, sourceID)
	return snap.Text, snap.Err
}

func (p *Page) newSourcePoller(w config.Widget) *indicator.Poller {
	return indicator.NewPoller(w.ID,
		indicator.ProviderFunc(p.refresh),
		indicator.ChannelSink(p.readings),
		indicator.WithInterval(p.cfg.Interval),
		indicator.WithReadTimeout(p.cfg.ReadTimeout(w)),
	)
}

func (p *Page) newInstance(w config.Widget) *indicator.Instance {
	return indicator.NewInstance(w.ID, w.Indicator.Resolve(), p,
		indicator.ChannelSink(p.readings),
		indicator.WithInterval(p.cfg.Interval),
		indicator.WithReadTimeout(p.cfg.Timeout),
	)
}

// Mount starts every source poller and mounts every indicator. ctx bounds
// all polling; cancelling it stops the pollers but does not unmount.
func (p *Page) Mount(ctx context.Context) {
	p.ctx = ctx
	for _, w := range p.cfg.Sources() {
		p.sources[w.ID].Start(ctx, w.ID)
	}
	for _, w := range p.cfg.Indicators() {
		p.indicators[w.ID].Mount(ctx)
	}
	p.log.Debug("page mounted: %d sources, %d indicators", len(p.sources), len(p.indicators))
}

// Readings is the channel pollers deliver to. Feed each value to Handle.
func (p *Page) Readings() <-chan indicator.Reading {
	return p.readings
}

// Handle applies a reading. It returns true when something visible changed:
// an indicator's outcome, or a source's displayed text.
func (p *Page) Handle(r indicator.Reading) bool {
	if in, ok := p.indicators[r.WidgetID]; ok {
		return in.Apply(r)
	}
	if poller, ok := p.sources[r.WidgetID]; ok {
		return poller.Current(r.Generation)
	}
	return false
}

// Refresh re-reads every source now. Restarting a poller samples at once.
func (p *Page) Refresh() {
	if p.ctx == nil {
		return
	}
	for _, w := range p.cfg.Sources() {
		p.sources[w.ID].Start(p.ctx, w.ID)
	}
}

// Reload swaps in a new config. Sources are rebuilt. Indicators that survive
// are reconfigured in place, so their poller restarts only when their source
// changed; removed ones are unmounted and new ones mounted. A changed page
// interval remounts every indicator.
func (p *Page) Reload(cfg *config.Config) {
	old := p.cfg
	intervalChanged := old.Interval != cfg.Interval || old.Timeout != cfg.Timeout

	for id, poller := range p.sources {
		poller.Stop()
		delete(p.sources, id)
	}

	reg := source.Build(cfg, p.log, p.opts)
	p.mu.Lock()
	prev := p.reg
	p.reg = reg
	p.cfg = cfg
	p.mu.Unlock()
	if err := prev.Close(); err != nil {
		p.log.Warn("closing previous sources: %v", err)
	}

	for _, w := range cfg.Sources() {
		p.sources[w.ID] = p.newSourcePoller(w)
		if p.ctx != nil {
			p.sources[w.ID].Start(p.ctx, w.ID)
		}
	}

	keep := make(map[string]bool)
	for _, w := range cfg.Indicators() {
		keep[w.ID] = true
		in, exists := p.indicators[w.ID]
		if exists && !intervalChanged && p.ctx != nil {
			in.Configure(p.ctx, w.Indicator.Resolve())
			continue
		}
		var bounds indicator.Bounds
		if exists {
			bounds = in.Bounds()
			in.Unmount()
		}
		in = p.newInstance(w)
		p.indicators[w.ID] = in
		if p.ctx != nil {
			in.Mount(p.ctx)
			in.Resize(bounds)
		}
	}
	for id, in := range p.indicators {
		if !keep[id] {
			in.Unmount()
			delete(p.indicators, id)
		}
	}
	p.log.Info("config reloaded: %d widgets", len(cfg.Widgets))
}

// Resize feeds new bounds to an indicator. Unknown ids are ignored.
func (p *Page) Resize(id string, b indicator.Bounds) bool {
	in, ok := p.indicators[id]
	if !ok {
		return false
	}
	return in.Resize(b)
}

// Config returns the config the page is running.
func (p *Page) Config() *config.Config {
	return p.cfg
}

// Widgets returns the page's widgets in config order.
func (p *Page) Widgets() []config.Widget {
	return p.cfg.Widgets
}

// Indicator returns the instance for an indicator widget.
func (p *Page) Indicator(id string) (*indicator.Instance, bool) {
	in, ok := p.indicators[id]
	return in, ok
}

// Snapshot returns the text a source widget currently displays.
func (p *Page) Snapshot(id string) (source.Snapshot, bool) {
	p.mu.RLock()
	reg := p.reg
	p.mu.RUnlock()
	return reg.Snapshot(id)
}

// LiveTimers counts running pollers, sources and indicators together.
func (p *Page) LiveTimers() int {
	n := 0
	for _, poller := range p.sources {
		if poller.Active() {
			n++
		}
	}
	for _, in := range p.indicators {
		if in.Polling() {
			n++
		}
	}
	return n
}

// Observing counts indicators that are watching their bounds.
func (p *Page) Observing() int {
	n := 0
	for _, in := range p.indicators {
		if in.Observing() {
			n++
		}
	}
	return n
}

// Unmount stops every poller and unmounts every indicator. The registry
// stays open so the page can still be rendered.
func (p *Page) Unmount() {
	for _, poller := range p.sources {
		poller.Stop()
	}
	for _, in := range p.indicators {
		in.Unmount()
	}
}

// Close unmounts everything and releases source resources.
func (p *Page) Close() error {
	p.Unmount()
	p.mu.RLock()
	reg := p.reg
	p.mu.RUnlock()
	return reg.Close()
}
