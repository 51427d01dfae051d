package git

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrTimeout reports a git process killed after exceeding its time limit.
	ErrTimeout = errors.New("git command timed out")
	// ErrProcessFailed reports a git process that exited with a non-zero status.
	ErrProcessFailed = errors.New("git command failed")
	// ErrMalformedRecord reports output that does not follow the record grammar.
	ErrMalformedRecord = errors.New("malformed commit record")
	// ErrNoBranches reports a repository without remote-tracking branches.
	ErrNoBranches = errors.New("no remote branches found")
	// ErrUnknownRevision reports a revision expression git could not resolve.
	ErrUnknownRevision = errors.New("unknown revision")
)

// TimeoutError is returned when a command is killed after Timeout elapsed.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Command, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// ProcessError is returned when a command exits with a non-zero status.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ProcessError) Is(target error) bool { return target == ErrProcessFailed }

// MalformedRecordError identifies the output line that broke the grammar.
// Line is 1-based.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed commit record at line %d (%s): %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// UnknownRevisionError names the revision that failed to resolve.
type UnknownRevisionError struct {
	Repo     string
	Revision string
	Err      error
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("unknown revision %q in %s", e.Revision, e.Repo)
}

func (e *UnknownRevisionError) Is(target error) bool { return target == ErrUnknownRevision }

func (e *UnknownRevisionError) Unwrap() error { return e.Err }

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
