package cmd

import (
	"context"
	"time"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/masmgr/commitlog/internal/output"
	"github.com/urfave/cli/v2"
)

// GetBranchesCmd returns the get_branches command.
func GetBranchesCmd(deps Deps) *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:    "match",
			Aliases: []string{"m"},
			Usage:   "Glob patterns to keep (can be specified multiple times)",
		},
	)

	return &cli.Command{
		Name:   "get_branches",
		Usage:  "List remote branches of a repository",
		Flags:  flags,
		Action: func(c *cli.Context) error { return getBranchesAction(c, deps) },
	}
}

func getBranchesAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		branches, err := cc.Branches.ListBranches(ctx, cc.Repo)
		if err != nil {
			return err
		}

		// The default is chosen from the full list so filtering cannot change it.
		defaultBranch := ""
		if len(branches) > 0 {
			defaultBranch, _ = git.DefaultBranch(branches, cc.Config.History.PreferredBranches...)
		}

		branches, err = git.FilterBranches(branches, c.StringSlice("match"))
		if err != nil {
			return err
		}

		return writeBranchReport(c, &output.BranchReport{
			Repo:          cc.Repo.Name,
			DefaultBranch: defaultBranch,
			GeneratedAt:   time.Now(),
			Branches:      branches,
		})
	})
}
