package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/masmgr/commitlog/internal/git"
)

// CISummary is the first line of CI output.
type CISummary struct {
	Type   string `json:"type"`
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"`
	Total  int    `json:"total"`
}

// CICommitEntry is one commit line of CI output.
type CICommitEntry struct {
	Type string `json:"type"`
	git.CommitRecord
}

// CIBranchEntry is one branch line of CI output.
type CIBranchEntry struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// CICommitWriter writes commit reports as NDJSON (one JSON object per line) for pipelines.
type CICommitWriter struct{}

// Write outputs a summary line followed by one line per commit.
func (w *CICommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	commits := limitTop(report.Commits, options.Top)
	summary := CISummary{Type: "summary", Repo: report.Repo, Branch: report.Branch, Total: len(report.Commits)}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}
	for _, c := range commits {
		if err := writeNDJSONLine(out, CICommitEntry{Type: "commit", CommitRecord: c}); err != nil {
			return err
		}
	}
	return nil
}

// CIBranchWriter writes branch reports as NDJSON.
type CIBranchWriter struct{}

// Write outputs a summary line followed by one line per branch.
func (w *CIBranchWriter) Write(report *BranchReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	branches := limitTop(report.Branches, options.Top)
	if err := writeNDJSONLine(out, CISummary{Type: "summary", Repo: report.Repo, Total: len(report.Branches)}); err != nil {
		return err
	}
	for _, b := range branches {
		if err := writeNDJSONLine(out, CIBranchEntry{Type: "branch", Name: b, Default: b == report.DefaultBranch}); err != nil {
			return err
		}
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
