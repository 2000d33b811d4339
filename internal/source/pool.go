package source

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/beacon/pkg/sshutil"
)

// Pool keeps one SSH connection per host so every ssh widget pointed at the
// same host shares it across refresh cycles.
type Pool struct {
	dial    sshutil.DialFunc
	timeout time.Duration

	mu          sync.Mutex
	connections map[string]*poolEntry
}

// poolEntry holds a connection and its metadata.
type poolEntry struct {
	conn     sshutil.Executor
	lastUsed time.Time
}

// NewPool creates an empty pool. A nil dial uses sshutil.DialExecutor; a zero
// timeout uses 10s.
func NewPool(dial sshutil.DialFunc, timeout time.Duration) *Pool {
	if dial == nil {
		dial = sshutil.DialExecutor
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Pool{
		dial:        dial,
		timeout:     timeout,
		connections: make(map[string]*poolEntry),
	}
}

// Get returns the pooled connection for host, dialing if there is none.
// Concurrent callers for the same host may both dial; the first connection
// stored wins and the other is closed.
func (p *Pool) Get(ctx context.Context, host string) (sshutil.Executor, error) {
	p.mu.Lock()
	if entry, ok := p.connections[host]; ok {
		entry.lastUsed = time.Now()
		p.mu.Unlock()
		return entry.conn, nil
	}
	p.mu.Unlock()

	conn, err := p.dial(ctx, host, p.timeout)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.connections[host]; ok {
		_ = conn.Close()
		return entry.conn, nil
	}
	p.connections[host] = &poolEntry{conn: conn, lastUsed: time.Now()}
	return conn, nil
}

// Discard closes and forgets conn if it is still the pooled connection for
// host. Called after a failed exec so the next read redials.
func (p *Pool) Discard(host string, conn sshutil.Executor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.connections[host]; ok && entry.conn == conn {
		_ = entry.conn.Close()
		delete(p.connections, host)
	}
}

// Size returns the number of open connections.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections)
}

// LastUsed reports when host's connection last served a read.
func (p *Pool) LastUsed(host string) (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.connections[host]
	if !ok {
		return time.Time{}, false
	}
	return entry.lastUsed, true
}

// Close closes all connections in the pool and clears it.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for host, entry := range p.connections {
		_ = entry.conn.Close()
		delete(p.connections, host)
	}
	return nil
}
