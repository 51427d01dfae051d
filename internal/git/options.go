package git

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DefaultPreferredBranches is the default-branch preference order.
var DefaultPreferredBranches = []string{"master", "trunk"}

// Options configures the git-backed components.
type Options struct {
	Binary            string   // git executable, default "git"
	Remote            string   // remote whose tracking branches are used, default "origin"
	PreferredBranches []string // default-branch preference, default DefaultPreferredBranches
	Logger            logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = "git"
	}
	if o.Remote == "" {
		o.Remote = DefaultRemote
	}
	if len(o.PreferredBranches) == 0 {
		o.PreferredBranches = DefaultPreferredBranches
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// invoker prefixes every command with "-C <repo path>".
type invoker struct {
	runner Runner
	opts   Options
}

func newInvoker(runner Runner, opts Options) invoker {
	return invoker{runner: runner, opts: opts.withDefaults()}
}

func (i invoker) run(ctx context.Context, repo Repository, args ...string) ([]byte, error) {
	return i.runner.Run(ctx, i.opts.Binary, repoArgs(repo, args)...)
}

func (i invoker) stream(ctx context.Context, repo Repository, handle LineHandler, args ...string) error {
	return i.runner.Stream(ctx, handle, i.opts.Binary, repoArgs(repo, args)...)
}

func (i invoker) log() logrus.FieldLogger {
	return i.opts.Logger
}

func repoArgs(repo Repository, args []string) []string {
	return append([]string{"-C", repo.Path}, args...)
}
