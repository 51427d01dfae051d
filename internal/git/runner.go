package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds every git invocation unless configured otherwise.
	DefaultTimeout = 30 * time.Second

	// waitDelay caps how long Wait blocks on pipes after the process is killed.
	waitDelay = 2 * time.Second

	// maxLineSize keeps bufio.Scanner from failing on very long subject lines.
	maxLineSize = 10 * 1024 * 1024
)

// LineHandler receives one line of process output, without the trailing newline.
// Returning an error stops the process.
type LineHandler func(line string) error

// Runner executes external commands. Arguments are passed as an argument
// vector; no shell is involved.
type Runner interface {
	// Run executes the command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream executes the command and hands each stdout line to handle as it arrives.
	Stream(ctx context.Context, handle LineHandler, name string, args ...string) error
}

// ExecRunner runs commands with os/exec under a hard wall-clock timeout.
type ExecRunner struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// NewExecRunner creates a runner. A non-positive timeout selects DefaultTimeout.
func NewExecRunner(timeout time.Duration, logger logrus.FieldLogger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExecRunner{Timeout: timeout, Logger: logger}
}

// Run executes name with args and returns the captured stdout.
// The process is killed when the timeout expires.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, &stderr, name, args)
	cmd.Stdout = &stdout

	start := time.Now()
	err := cmd.Run()
	r.Logger.WithField("elapsed", time.Since(start).String()).Debugf("ran %s", commandLine(name, args))
	if err != nil {
		return nil, r.classify(ctx, name, args, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Stream executes name with args, reading stdout incrementally while the
// process runs. A handler error kills the process and is returned unchanged.
func (r *ExecRunner) Stream(ctx context.Context, handle LineHandler, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := r.command(ctx, &stderr, name, args)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return r.classify(ctx, name, args, err, "")
	}

	handleErr, scanErr := scanLines(stdout, handle)
	if handleErr != nil || scanErr != nil {
		cancel()
	}
	waitErr := cmd.Wait()
	r.Logger.WithField("elapsed", time.Since(start).String()).Debugf("streamed %s", commandLine(name, args))

	switch {
	case handleErr != nil:
		return handleErr
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return r.classify(ctx, name, args, waitErr, stderr.String())
	case scanErr != nil:
		return fmt.Errorf("read output of %s: %w", commandLine(name, args), scanErr)
	case waitErr != nil:
		return r.classify(ctx, name, args, waitErr, stderr.String())
	}
	return nil
}

func (r *ExecRunner) command(ctx context.Context, stderr io.Writer, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	return cmd
}

func (r *ExecRunner) classify(ctx context.Context, name string, args []string, err error, stderr string) error {
	line := commandLine(name, args)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Command: line, Timeout: r.Timeout}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", line, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ProcessError{Command: line, ExitCode: exitErr.ExitCode(), Stderr: stderr}
	}
	return fmt.Errorf("%s: %w", line, err)
}

func scanLines(r io.Reader, handle LineHandler) (handleErr, scanErr error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := handle(scanner.Text()); err != nil {
			return err, nil
		}
	}
	return nil, scanner.Err()
}

// Compile-time interface conformance check.
var _ Runner = (*ExecRunner)(nil)
