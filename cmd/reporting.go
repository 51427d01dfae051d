package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/masmgr/commitlog/internal/output"
)

func writeCommitReport(c *cli.Context, cc *CommandContext, branch, source string, commits []git.CommitRecord) error {
	report := &output.CommitReport{
		Repo:        cc.Repo.Name,
		Branch:      branch,
		Source:      source,
		GeneratedAt: time.Now(),
		Commits:     commits,
	}
	opts := OutputOptions(c)
	return output.NewCommitReportWriter(opts.Format).Write(report, opts)
}

func writeBranchReport(c *cli.Context, report *output.BranchReport) error {
	opts := OutputOptions(c)
	return output.NewBranchReportWriter(opts.Format).Write(report, opts)
}

func writeSearchRunReport(c *cli.Context, report *output.SearchRunReport) error {
	opts := OutputOptions(c)
	return output.NewSearchRunReportWriter(opts.Format).Write(report, opts)
}
