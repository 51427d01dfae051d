package git

import (
	"context"
	"strings"
	"sync"
)

// MockRunner is a test double for Runner.
// It serves canned stdout keyed by the git arguments that follow "-C <path>",
// joined with single spaces, and records every call.
type MockRunner struct {
	Outputs map[string]string
	Errors  map[string]error

	mu    sync.Mutex
	calls [][]string
}

// NewMockRunner creates a MockRunner with the given canned outputs.
func NewMockRunner(outputs map[string]string) *MockRunner {
	return &MockRunner{Outputs: outputs, Errors: map[string]error{}}
}

// Run returns the canned output for the command.
func (m *MockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	out, err := m.lookup(name, args)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Stream feeds the canned output to handle line by line.
func (m *MockRunner) Stream(_ context.Context, handle LineHandler, name string, args ...string) error {
	out, err := m.lookup(name, args)
	if err != nil {
		return err
	}
	handleErr, scanErr := scanLines(strings.NewReader(out), handle)
	if handleErr != nil {
		return handleErr
	}
	return scanErr
}

// Calls returns the recorded argument vectors, without the "-C <path>" prefix.
func (m *MockRunner) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.calls...)
}

func (m *MockRunner) lookup(name string, args []string) (string, error) {
	if len(args) >= 2 && args[0] == "-C" {
		args = args[2:]
	}
	key := strings.Join(args, " ")

	m.mu.Lock()
	m.calls = append(m.calls, args)
	m.mu.Unlock()

	if err, ok := m.Errors[key]; ok {
		return "", err
	}
	out, ok := m.Outputs[key]
	if !ok {
		return "", &ProcessError{Command: commandLine(name, args), ExitCode: 128, Stderr: "mock: unexpected command " + key}
	}
	return out, nil
}

// Compile-time interface conformance check.
var _ Runner = (*MockRunner)(nil)
