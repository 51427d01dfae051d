package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const maxReplayLine = 10 * 1024 * 1024

// ReplayError reports a log line that could not be replayed.
type ReplayError struct {
	Line int
	Err  error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("log line %d: %v", e.Line, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// ReplayLog reads newline-delimited JSON log entries from r and prints the
// message field of each to w, one per line, with embedded newlines removed.
// Blank lines are skipped. It returns the number of messages printed.
func ReplayLog(r io.Reader, w io.Writer, field string) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReplayLine)

	printed := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var entry map[string]json.RawMessage
		if err := json.Unmarshal(line, &entry); err != nil {
			return printed, &ReplayError{Line: lineNo, Err: err}
		}
		raw, ok := entry[field]
		if !ok {
			return printed, &ReplayError{Line: lineNo, Err: fmt.Errorf("missing %q field", field)}
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return printed, &ReplayError{Line: lineNo, Err: fmt.Errorf("field %q: %w", field, err)}
		}

		if _, err := fmt.Fprintln(w, strings.ReplaceAll(msg, "\n", "")); err != nil {
			return printed, err
		}
		printed++
	}
	if err := scanner.Err(); err != nil {
		return printed, fmt.Errorf("read log: %w", err)
	}
	return printed, nil
}
