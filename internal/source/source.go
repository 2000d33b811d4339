// Package source implements value widgets: the things on a page that display
// a piece of text (a file's content, a command's output, a metric) that
// indicators can sample.
//
// A Registry holds the page's sources. It remembers the last text each source
// displayed, and serves that text to indicators through indicator.Provider,
// so an indicator sees exactly what the source card shows.
package source

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
)

// maxTextBytes caps how much of a source's output is kept for display.
const maxTextBytes = 64 << 10

// Source produces the text a value widget displays. Implementations must be
// safe for concurrent use.
type Source interface {
	Read(ctx context.Context) (string, error)
}

// ErrNotFound is wrapped by reads of ids that do not name a value widget on
// the page.
var ErrNotFound = stderrors.New("source widget not found")

func notFound(id string) error {
	return errors.WrapWithCode(ErrNotFound, errors.ErrSource,
		fmt.Sprintf("No value widget '%s' on this page", id),
		"Check the indicator's 'source' id")
}

// Snapshot is the last text a source displayed.
type Snapshot struct {
	Text string
	Err  error
	At   time.Time
	Took time.Duration
}

// Registry is the set of value widgets on a page.
type Registry struct {
	log logger.Logger

	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	snaps   map[string]Snapshot
	closers []io.Closer
}

// NewRegistry creates an empty registry.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Noop()
	}
	return &Registry{
		log:     log,
		sources: make(map[string]Source),
		snaps:   make(map[string]Snapshot),
	}
}

// Register adds or replaces the source for id.
func (r *Registry) Register(id string, s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[id]; !exists {
		r.order = append(r.order, id)
	}
	r.sources[id] = s
	delete(r.snaps, id)
}

// Has reports whether id is a registered source.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sources[id]
	return ok
}

// IDs returns source ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Refresh reads source id now and records the result as its displayed text.
func (r *Registry) Refresh(ctx context.Context, id string) Snapshot {
	r.mu.RLock()
	src, ok := r.sources[id]
	r.mu.RUnlock()
	if !ok {
		return Snapshot{Err: notFound(id), At: time.Now()}
	}

	start := time.Now()
	text, err := src.Read(ctx)
	snap := Snapshot{Text: text, Err: err, At: time.Now(), Took: time.Since(start)}
	if err != nil {
		r.log.Debug("source %s read failed after %s: %v", id, snap.Took, err)
	}

	r.mu.Lock()
	if _, still := r.sources[id]; still {
		r.snaps[id] = snap
	}
	r.mu.Unlock()
	return snap
}

// Read returns the text source id currently displays, refreshing it first if
// it has never been read. It implements indicator.Provider. Unknown ids, and
// ids of widgets that are not sources, return ErrNotFound.
func (r *Registry) Read(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	_, ok := r.sources[id]
	snap, seen := r.snaps[id]
	r.mu.RUnlock()

	if !ok {
		return "", notFound(id)
	}
	if !seen {
		snap = r.Refresh(ctx, id)
	}
	return snap.Text, snap.Err
}

// Snapshot returns the last recorded read of id.
func (r *Registry) Snapshot(id string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snaps[id]
	return s, ok
}

// AddCloser registers a shared resource, such as a connection pool, to be
// closed after the sources on Close.
func (r *Registry) AddCloser(c io.Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, c)
}

// Close releases every source that holds resources.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, id := range r.order {
		if c, ok := r.sources[id].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", id, err))
			}
		}
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return stderrors.Join(errs...)
}

// cleanText trims surrounding whitespace and caps the length.
func cleanText(b []byte) string {
	if len(b) > maxTextBytes {
		b = b[:maxTextBytes]
	}
	return string(bytes.TrimSpace(b))
}
