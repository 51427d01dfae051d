//go:build unix

package git

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestExecRunner_Run(t *testing.T) {
	requireBinary(t, "sh")
	runner := NewExecRunner(5*time.Second, nil)

	out, err := runner.Run(context.Background(), "sh", "-c", `printf '%s\n' "$1"`, "sh", `a "quoted"; $(not run)`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != `a "quoted"; $(not run)` {
		t.Fatalf("stdout = %q", got)
	}
}

func TestExecRunner_Run_NonZeroExit(t *testing.T) {
	requireBinary(t, "sh")
	runner := NewExecRunner(5*time.Second, nil)

	_, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if !errors.Is(err, ErrProcessFailed) {
		t.Fatalf("error = %v, expected ErrProcessFailed", err)
	}
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error %T is not *ProcessError", err)
	}
	if procErr.ExitCode != 3 {
		t.Fatalf("exit code = %d, expected 3", procErr.ExitCode)
	}
	if strings.TrimSpace(procErr.Stderr) != "oops" {
		t.Fatalf("stderr = %q, expected oops", procErr.Stderr)
	}
	if !strings.HasPrefix(procErr.Command, "sh -c") {
		t.Fatalf("command = %q", procErr.Command)
	}
}

func TestExecRunner_Run_MissingBinary(t *testing.T) {
	runner := NewExecRunner(time.Second, nil)

	_, err := runner.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrProcessFailed) || errors.Is(err, ErrTimeout) {
		t.Fatalf("start failure misclassified: %v", err)
	}
}

func TestExecRunner_Run_Timeout(t *testing.T) {
	requireBinary(t, "sleep")
	runner := NewExecRunner(100*time.Millisecond, nil)

	start := time.Now()
	_, err := runner.Run(context.Background(), "sleep", "30")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, expected ErrTimeout", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("returned after %s, before the timeout", elapsed)
	}
	if elapsed > 10*time.Second {
		t.Fatalf("returned after %s, process was not killed", elapsed)
	}
}

func TestExecRunner_Stream_TimeoutKillsProcess(t *testing.T) {
	requireBinary(t, "sh")
	requireBinary(t, "sleep")
	runner := NewExecRunner(200*time.Millisecond, nil)

	var pid int
	err := runner.Stream(context.Background(), func(line string) error {
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil {
			pid = n
		}
		return nil
	}, "sh", "-c", "echo $$; exec sleep 30")

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, expected ErrTimeout", err)
	}
	if pid == 0 {
		t.Fatalf("did not receive the child pid")
	}
	if err := syscall.Kill(pid, 0); !errors.Is(err, syscall.ESRCH) {
		t.Fatalf("process %d still exists after timeout (kill 0: %v)", pid, err)
	}
}

func TestExecRunner_Stream_HandlerErrorStopsProcess(t *testing.T) {
	requireBinary(t, "sh")
	runner := NewExecRunner(10*time.Second, nil)

	errStop := errors.New("stop")
	lines := 0
	start := time.Now()
	err := runner.Stream(context.Background(), func(string) error {
		lines++
		if lines == 3 {
			return errStop
		}
		return nil
	}, "sh", "-c", "while true; do echo line; done")

	if !errors.Is(err, errStop) {
		t.Fatalf("error = %v, expected errStop", err)
	}
	if lines != 3 {
		t.Fatalf("lines = %d, expected 3", lines)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("process was not stopped promptly")
	}
}

func TestExecRunner_LargeOutput(t *testing.T) {
	requireBinary(t, "sh")
	runner := NewExecRunner(30*time.Second, nil)

	// Far more than a pipe buffer holds.
	const n = 200000
	script := "i=0; while [ $i -lt " + strconv.Itoa(n) + " ]; do echo commit; i=$((i+1)); done"

	out, err := runner.Run(context.Background(), "sh", "-c", script)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(string(out), "\n"); got != n {
		t.Fatalf("lines = %d, expected %d", got, n)
	}

	count := 0
	err = runner.Stream(context.Background(), func(string) error {
		count++
		return nil
	}, "sh", "-c", script)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if count != n {
		t.Fatalf("streamed lines = %d, expected %d", count, n)
	}
}

func TestExecRunner_ParentCancel(t *testing.T) {
	requireBinary(t, "sleep")
	runner := NewExecRunner(30*time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := runner.Run(ctx, "sleep", "30")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, expected context.Canceled", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("cancellation must not be reported as timeout")
	}
}

func TestNewExecRunner_DefaultTimeout(t *testing.T) {
	if r := NewExecRunner(0, nil); r.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %s, expected %s", r.Timeout, DefaultTimeout)
	}
}
