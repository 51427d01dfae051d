package output

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/commitlog/internal/git"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testCommits(n int) []git.CommitRecord {
	out := make([]git.CommitRecord, n)
	for i := range out {
		out[i] = git.CommitRecord{
			ID:          fmt.Sprintf("%040x", i+1),
			Author:      "Jane <jane@example.com>",
			AuthorDate:  "2024-03-01T10:00:00+02:00",
			Committer:   "Bob <bob@example.com>",
			CommitDate:  "2024-03-01T10:05:00+02:00",
			Description: fmt.Sprintf("fix, bug %d", i),
		}
	}
	return out
}

func testCommitReport(n int) *CommitReport {
	return &CommitReport{
		Repo:        "linux",
		Branch:      "master",
		Source:      "git",
		GeneratedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Commits:     testCommits(n),
	}
}

func readTestFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func TestTruncateMessage_Output(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Multibyte", msg: "ééééééééééé", maxLen: 5, expected: "éé..."},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Pipe", input: "a|b", expected: "a\\|b"},
		{name: "Asterisk", input: "a*b", expected: "a\\*b"},
		{name: "Underscore", input: "a_b", expected: "a\\_b"},
		{name: "Backtick", input: "a`b", expected: "a\\`b"},
		{name: "Multiple specials", input: "a|b*c_d", expected: "a\\|b\\*c\\_d"},
		{name: "No specials", input: "plain text", expected: "plain text"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdown(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
