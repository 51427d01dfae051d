package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/masmgr/commitlog/internal/git"
)

// JSONCommitWriter writes commit reports as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for a commit list.
type JSONCommitReport struct {
	Repo         string             `json:"repo"`
	Branch       string             `json:"branch,omitempty"`
	Source       string             `json:"source,omitempty"`
	GeneratedAt  string             `json:"generatedAt"`
	TotalCommits int                `json:"totalCommits"`
	Commits      []git.CommitRecord `json:"commits"`
}

// Write outputs the commit report as JSON.
func (w *JSONCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)
	if commits == nil {
		commits = []git.CommitRecord{}
	}

	return writeJSON(JSONCommitReport{
		Repo:         report.Repo,
		Branch:       report.Branch,
		Source:       report.Source,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Commits),
		Commits:      commits,
	}, options)
}

// JSONBranchWriter writes branch reports as JSON.
type JSONBranchWriter struct{}

// JSONBranchReport is the JSON output structure for a branch list.
type JSONBranchReport struct {
	Repo          string   `json:"repo"`
	DefaultBranch string   `json:"defaultBranch,omitempty"`
	GeneratedAt   string   `json:"generatedAt"`
	Branches      []string `json:"branches"`
}

// Write outputs the branch report as JSON.
func (w *JSONBranchWriter) Write(report *BranchReport, options OutputOptions) error {
	branches := limitTop(report.Branches, options.Top)
	if branches == nil {
		branches = []string{}
	}

	return writeJSON(JSONBranchReport{
		Repo:          report.Repo,
		DefaultBranch: report.DefaultBranch,
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		Branches:      branches,
	}, options)
}

// JSONSearchRunWriter writes concurrent search summaries as JSON.
type JSONSearchRunWriter struct{}

// JSONSearchRunReport is the JSON output structure for a concurrent search.
type JSONSearchRunReport struct {
	Repo        string          `json:"repo"`
	Author      string          `json:"author,omitempty"`
	Committer   string          `json:"committer,omitempty"`
	Description string          `json:"description,omitempty"`
	GeneratedAt string          `json:"generatedAt"`
	Runs        []JSONSearchRun `json:"runs"`
}

// JSONSearchRun is one worker's result.
type JSONSearchRun struct {
	Worker         int     `json:"worker"`
	Commits        int     `json:"commits"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// Write outputs the search summary as JSON.
func (w *JSONSearchRunWriter) Write(report *SearchRunReport, options OutputOptions) error {
	runs := make([]JSONSearchRun, len(report.Runs))
	for i, r := range report.Runs {
		runs[i] = JSONSearchRun{Worker: r.Worker, Commits: r.Commits, ElapsedSeconds: r.Elapsed.Seconds()}
	}

	return writeJSON(JSONSearchRunReport{
		Repo:        report.Repo,
		Author:      report.Filter.Author,
		Committer:   report.Filter.Committer,
		Description: report.Filter.Description,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Runs:        runs,
	}, options)
}

func writeJSON(v interface{}, options OutputOptions) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	out, file, err := openOutputWriter(options)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if file != nil {
		defer file.Close()
	}

	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
