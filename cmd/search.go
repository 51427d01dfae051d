package cmd

import (
	"context"
	"time"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/masmgr/commitlog/internal/output"
	"github.com/urfave/cli/v2"
)

// SearchCommitsCmd returns the search_commits command.
func SearchCommitsCmd(deps Deps) *cli.Command {
	return &cli.Command{
		Name:   "search_commits",
		Usage:  "Search commits on all branches by author, committer or message",
		Flags:  append(commonFlags(), filterFlags()...),
		Action: func(c *cli.Context) error { return searchCommitsAction(c, deps) },
	}
}

func searchCommitsAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		commits, err := cc.Search.Search(ctx, cc.Repo, searchFilter(c))
		if err != nil {
			return err
		}
		return writeCommitReport(c, cc, "", "git", commits)
	})
}

// ConcurrentSearchCommitsCmd returns the concurrent_search_commits command.
func ConcurrentSearchCommitsCmd(deps Deps) *cli.Command {
	flags := append(commonFlags(), filterFlags()...)
	flags = append(flags, &cli.IntFlag{
		Name:  "concurrency",
		Usage: "Number of identical searches to run at once (default: search.concurrency)",
	})

	return &cli.Command{
		Name:   "concurrent_search_commits",
		Usage:  "Run the same search on several workers and report per-worker timings",
		Flags:  flags,
		Action: func(c *cli.Context) error { return concurrentSearchCommitsAction(c, deps) },
	}
}

func concurrentSearchCommitsAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		workers := cc.Config.Search.Concurrency
		if c.IsSet("concurrency") {
			workers = c.Int("concurrency")
		}

		filter := searchFilter(c)
		runs, err := cc.Search.ConcurrentSearch(ctx, cc.Repo, filter, workers)
		if err != nil {
			return err
		}

		return writeSearchRunReport(c, &output.SearchRunReport{
			Repo:        cc.Repo.Name,
			Filter:      filter,
			GeneratedAt: time.Now(),
			Runs:        runs,
		})
	})
}

func searchFilter(c *cli.Context) git.SearchFilter {
	return git.SearchFilter{
		Author:      c.String("author"),
		Committer:   c.String("committer"),
		Description: c.String("description"),
	}
}
