package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReplayLog(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"info","log":"Found 2 branches","time":"2024-01-01T00:00:00Z"}`,
		``,
		`{"level":"debug","log":"line one\nline two"}`,
		`{"log":"Operation completed in 0.1 seconds","operation":"get_commits"}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	n, err := ReplayLog(strings.NewReader(input), &out, "log")
	if err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if n != 3 {
		t.Fatalf("printed = %d, want 3", n)
	}

	want := "Found 2 branches\nline oneline two\nOperation completed in 0.1 seconds\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestReplayLog_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "NotJSON", input: `{"log":"ok"}` + "\nnot json\n", line: 2},
		{name: "MissingField", input: `{"msg":"other key"}` + "\n", line: 1},
		{name: "NonStringField", input: `{"log":42}` + "\n", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ReplayLog(strings.NewReader(tt.input), &out, "log")
			var replayErr *ReplayError
			if !errors.As(err, &replayErr) {
				t.Fatalf("error = %v, want *ReplayError", err)
			}
			if replayErr.Line != tt.line {
				t.Fatalf("line = %d, want %d", replayErr.Line, tt.line)
			}
		})
	}
}

func TestReplayLog_Empty(t *testing.T) {
	var out bytes.Buffer
	n, err := ReplayLog(strings.NewReader(""), &out, "log")
	if err != nil || n != 0 || out.Len() != 0 {
		t.Fatalf("ReplayLog(empty) = %d, %v, %q", n, err, out.String())
	}
}
