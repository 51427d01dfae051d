package cmd

import (
	"context"
	"fmt"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/urfave/cli/v2"
)

// GetCommitsCmd returns the get_commits command.
func GetCommitsCmd(deps Deps) *cli.Command {
	flags := append(commonFlags(),
		branchFlag(),
		&cli.StringFlag{
			Name:  "sha",
			Usage: "Last commit of the previous page; the page starts after it",
		},
		&cli.IntFlag{
			Name:  "per-page",
			Usage: "Commits per page (default: history.perPage)",
		},
	)

	return &cli.Command{
		Name:   "get_commits",
		Usage:  "List one page of a branch's history",
		Flags:  flags,
		Action: func(c *cli.Context) error { return getCommitsAction(c, deps) },
	}
}

func getCommitsAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		perPage := cc.Config.History.PerPage
		if c.IsSet("per-page") {
			perPage = c.Int("per-page")
		}
		if perPage < 1 {
			return fmt.Errorf("per-page must be positive, got %d", perPage)
		}

		branch, err := cc.History.BranchOrDefault(ctx, cc.Repo, c.String("branch"))
		if err != nil {
			return err
		}

		commits, err := cc.History.Fetch(ctx, cc.Repo, git.HistoryQuery{
			Branch:     branch,
			Cursor:     c.String("sha"),
			WindowSize: perPage,
		})
		if err != nil {
			return err
		}

		return writeCommitReport(c, cc, branch, "git", commits)
	})
}

// GetCommitCmd returns the get_commit command.
func GetCommitCmd(deps Deps) *cli.Command {
	flags := append(commonFlags(),
		branchFlag(),
		&cli.StringFlag{
			Name:  "sha",
			Usage: "Revision to show (default: head of --branch)",
		},
	)

	return &cli.Command{
		Name:   "get_commit",
		Usage:  "Show the metadata of a single commit",
		Flags:  flags,
		Action: func(c *cli.Context) error { return getCommitAction(c, deps) },
	}
}

func getCommitAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		rev := c.String("sha")
		branch := c.String("branch")
		if rev == "" {
			var err error
			branch, err = cc.History.BranchOrDefault(ctx, cc.Repo, branch)
			if err != nil {
				return err
			}
			rev, err = cc.Branches.ResolveHead(ctx, cc.Repo, branch)
			if err != nil {
				return err
			}
		}

		commit, err := cc.History.GetCommit(ctx, cc.Repo, rev)
		if err != nil {
			return err
		}

		return writeCommitReport(c, cc, branch, "git", []git.CommitRecord{commit})
	})
}
