package cmd

import (
	"context"
	"fmt"

	"github.com/masmgr/commitlog/config"
	"github.com/masmgr/commitlog/internal/cache"
	"github.com/masmgr/commitlog/internal/git"
	"github.com/masmgr/commitlog/internal/logging"
	"github.com/masmgr/commitlog/internal/measure"
	"github.com/masmgr/commitlog/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all repository commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Repo     git.Repository
	Branches *git.BranchResolver
	History  *git.HistoryFetcher
	Search   *git.SearchFetcher

	store      cache.Store
	ownsStore  bool
	injected   cache.Store
	cacheStore *cache.CommitCache
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, builds the logger and git components, and opens the repository.
func NewCommandContext(c *cli.Context, deps Deps) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: stderr(c),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	runner := deps.Runner
	if runner == nil {
		runner = git.NewExecRunner(cfg.Timeout(), logger)
	}

	name := c.String("repo")
	repo, err := git.OpenRepository(name, cfg.RepoPath(name))
	if err != nil {
		return nil, err
	}

	opts := cfg.GitOptions()
	opts.Logger = logger
	branches := git.NewBranchResolver(runner, opts)

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		Repo:     repo,
		Branches: branches,
		History:  git.NewHistoryFetcher(runner, branches, opts),
		Search:   git.NewSearchFetcher(runner, opts),
		injected: deps.Store,
	}, nil
}

// Cache opens the configured store on first use.
func (cc *CommandContext) Cache(ctx context.Context) (*cache.CommitCache, error) {
	if cc.cacheStore != nil {
		return cc.cacheStore, nil
	}

	store := cc.injected
	if store == nil {
		opts, err := cc.Config.CacheOptions()
		if err != nil {
			return nil, err
		}
		store, err = cache.Open(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		cc.ownsStore = true
	}

	cc.store = store
	cc.cacheStore = cache.New(store, cc.Logger)
	return cc.cacheStore, nil
}

// Close releases the cache connection if this context opened it.
func (cc *CommandContext) Close() error {
	if cc.store != nil && cc.ownsStore {
		return cc.store.Close()
	}
	return nil
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Stdout:     stdout(c),
	}
}

// executeWithContext sets up a CommandContext, times the action and releases resources.
func executeWithContext(c *cli.Context, deps Deps, fn func(ctx context.Context, cc *CommandContext) error) (err error) {
	cc, err := NewCommandContext(c, deps)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := cc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	_, err = measure.Track(cc.Logger.WithField("repo", cc.Repo.Name), c.Command.Name, func() error {
		return fn(ctx, cc)
	})
	return err
}
