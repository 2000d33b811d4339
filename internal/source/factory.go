package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/pkg/sshutil"
)

// Options carries the shared dependencies sources are built with.
type Options struct {
	// HTTPClient is used by http and prometheus sources.
	HTTPClient *http.Client

	// Dial opens SSH connections. Nil uses sshutil.DialExecutor.
	Dial sshutil.DialFunc

	// Pool shares SSH connections between ssh sources. Build creates one
	// per registry when nil.
	Pool *Pool

	// Dir is the working directory for command sources.
	Dir string
}

// New builds the source for a value widget.
func New(w config.Widget, opts Options) (Source, error) {
	switch w.Type {
	case config.TypeStatic:
		return Static{Value: w.Value}, nil
	case config.TypeFile:
		return File{Path: w.Path}, nil
	case config.TypeCommand:
		return Command{Command: w.Command, Dir: opts.Dir}, nil
	case config.TypeSSH:
		if opts.Pool == nil {
			return NewSSH(w.Host, w.Command, nil), nil
		}
		return NewSSH(w.Host, w.Command, opts.Pool), nil
	case config.TypeHTTP:
		return &HTTP{URL: w.URL, Headers: w.Headers, Client: opts.HTTPClient}, nil
	case config.TypePrometheus:
		return &Prometheus{URL: w.URL, Metric: w.Metric, Labels: w.Labels, Headers: w.Headers, Client: opts.HTTPClient}, nil
	case config.TypeSQLite:
		return &SQLite{Path: w.Path, Query: w.Query}, nil
	case config.TypePostgres:
		return &Postgres{DSN: w.DSN, Query: w.Query}, nil
	case config.TypeIndicator:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Widget '%s' is an indicator, not a value widget", w.ID),
			"Point indicators at value widgets only")
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown widget type '%s' on '%s'", w.Type, w.ID),
			"Run 'beacon validate' to check the config")
	}
}

// Build registers a source for every value widget in cfg. A widget whose
// source can't be built is still registered, and reports the build error
// on every read. Each read is bounded by the widget's timeout.
func Build(cfg *config.Config, log logger.Logger, opts Options) *Registry {
	reg := NewRegistry(log)
	if opts.Pool == nil {
		opts.Pool = NewPool(opts.Dial, 0)
		reg.AddCloser(opts.Pool)
	}
	for _, w := range cfg.Sources() {
		src, err := New(w, opts)
		if err != nil {
			src = broken{err: err}
		}
		reg.Register(w.ID, timed{Source: src, timeout: cfg.ReadTimeout(w)})
	}
	return reg
}

// broken is a source that could not be built.
type broken struct {
	err error
}

func (b broken) Read(context.Context) (string, error) {
	return "", b.err
}

// timed bounds each read of the wrapped source.
type timed struct {
	Source
	timeout time.Duration
}

func (t timed) Read(ctx context.Context) (string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.Source.Read(ctx)
}

func (t timed) Close() error {
	if c, ok := t.Source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
