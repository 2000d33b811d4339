package sshutil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/beacon/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Exec runs cmd on the remote host and returns its stdout and exit code. A
// non-zero exit is not an error. Exit code is -1 when the command could not
// run at all or ctx was cancelled first; on cancellation the session is
// closed, which ends the remote process.
func (c *Client) Exec(ctx context.Context, cmd string) (stdout []byte, exitCode int, err error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, -1, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var out, stderr bytes.Buffer
	session.Stdout = &out
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		session.Close()
		<-done
		return nil, -1, ctx.Err()
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			return out.Bytes(), exitErr.ExitStatus(), nil
		}
		return nil, -1, errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Failed to execute command: %s", cmd),
			"Check if the command exists on the remote host.")
	}
	return out.Bytes(), 0, nil
}
