package source

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rileyhilliard/beacon/internal/errors"
)

// Static always displays the same text.
type Static struct {
	Value string
}

// Read returns the configured value.
func (s Static) Read(context.Context) (string, error) {
	return s.Value, nil
}

// File displays the content of a local file.
type File struct {
	Path string
}

// Read returns the file's content, trimmed.
func (f File) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSource,
			fmt.Sprintf("Can't read %s", f.Path),
			"Check the path exists and is readable")
	}
	defer fh.Close()

	data, err := io.ReadAll(io.LimitReader(fh, maxTextBytes))
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("Can't read %s", f.Path))
	}
	return cleanText(data), nil
}

// Command displays the stdout of a local shell command.
type Command struct {
	Command string
	Dir     string
}

// Read runs the command under $SHELL (or /bin/sh). A non-zero exit is an error
// carrying the command's stderr.
func (c Command) Read(ctx context.Context) (string, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", c.Command)
	cmd.Dir = c.Dir
	// Children of the shell can hold stdout open after it is killed.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return "", exitFailure(c.Command, exitErr.ExitCode(), stderr.String())
		}
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't run the command locally",
			"Make sure the command exists and is executable.")
	}
	return cleanText(stdout.Bytes()), nil
}

func exitFailure(command string, code int, stderr string) error {
	msg := fmt.Sprintf("`%s` exited with %d", command, code)
	if s := strings.TrimSpace(stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return errors.New(errors.ErrExec, msg, "Run the command by hand to see what's wrong")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
