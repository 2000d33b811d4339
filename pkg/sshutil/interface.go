package sshutil

import (
	"context"
	"time"
)

// Executor runs commands on a remote host. *Client satisfies it; tests
// substitute fakes.
type Executor interface {
	// Exec returns stdout and the exit code. A non-zero exit with nil error
	// means the command ran and failed.
	Exec(ctx context.Context, cmd string) (stdout []byte, exitCode int, err error)
	Close() error
}

// DialFunc opens an Executor for host.
type DialFunc func(ctx context.Context, host string, timeout time.Duration) (Executor, error)

// DialExecutor is the default DialFunc, backed by Dial.
func DialExecutor(ctx context.Context, host string, timeout time.Duration) (Executor, error) {
	c, err := Dial(ctx, host, timeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}
