package cmd

import (
	"context"
	"fmt"

	"github.com/masmgr/commitlog/internal/cache"
	"github.com/urfave/cli/v2"
)

// WriteCacheCmd returns the write_cache command.
func WriteCacheCmd(deps Deps) *cli.Command {
	return &cli.Command{
		Name:   "write_cache",
		Usage:  "Store the full history of a branch in the cache",
		Flags:  append(commonFlags(), branchFlag()),
		Action: func(c *cli.Context) error { return writeCacheAction(c, deps) },
	}
}

func writeCacheAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		branch, err := cc.History.BranchOrDefault(ctx, cc.Repo, c.String("branch"))
		if err != nil {
			return err
		}

		commits, err := cc.History.FetchAll(ctx, cc.Repo, branch)
		if err != nil {
			return err
		}

		store, err := cc.Cache(ctx)
		if err != nil {
			return err
		}
		if err := store.Write(ctx, cc.Repo.Name, branch, commits); err != nil {
			return err
		}

		key := cache.Key{Repo: cc.Repo.Name, Branch: branch}
		_, err = fmt.Fprintf(stdout(c), "Cached %d commits under %s\n", len(commits), key)
		return err
	})
}

// ReadCacheCmd returns the read_cache command.
func ReadCacheCmd(deps Deps) *cli.Command {
	return &cli.Command{
		Name:   "read_cache",
		Usage:  "Print the cached history of a branch",
		Flags:  append(commonFlags(), branchFlag()),
		Action: func(c *cli.Context) error { return readCacheAction(c, deps) },
	}
}

func readCacheAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		branch, err := cc.History.BranchOrDefault(ctx, cc.Repo, c.String("branch"))
		if err != nil {
			return err
		}

		store, err := cc.Cache(ctx)
		if err != nil {
			return err
		}
		commits, err := store.Read(ctx, cc.Repo.Name, branch)
		if err != nil {
			return err
		}

		cc.Logger.Infof("Read %d commits", len(commits))
		return writeCommitReport(c, cc, branch, "cache", commits)
	})
}

// DiffCacheCmd returns the diff_cache command.
func DiffCacheCmd(deps Deps) *cli.Command {
	return &cli.Command{
		Name:   "diff_cache",
		Usage:  "Compare the cached history of a branch with the repository",
		Flags:  append(commonFlags(), branchFlag()),
		Action: func(c *cli.Context) error { return diffCacheAction(c, deps) },
	}
}

func diffCacheAction(c *cli.Context, deps Deps) error {
	return executeWithContext(c, deps, func(ctx context.Context, cc *CommandContext) error {
		branch, err := cc.History.BranchOrDefault(ctx, cc.Repo, c.String("branch"))
		if err != nil {
			return err
		}

		store, err := cc.Cache(ctx)
		if err != nil {
			return err
		}
		cached, err := store.Read(ctx, cc.Repo.Name, branch)
		if err != nil {
			return err
		}

		fresh, err := cc.History.FetchAll(ctx, cc.Repo, branch)
		if err != nil {
			return err
		}

		out := stdout(c)
		diff := cache.Diff(cached, fresh)
		if diff == "" {
			_, err = fmt.Fprintln(out, "Cache is up to date.")
			return err
		}
		_, err = fmt.Fprintln(out, diff)
		return err
	})
}
