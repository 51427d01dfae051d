package git

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// BranchResolver lists remote-tracking branches and resolves revisions.
type BranchResolver struct {
	invoker
}

// NewBranchResolver creates a resolver that runs git through runner.
func NewBranchResolver(runner Runner, opts Options) *BranchResolver {
	return &BranchResolver{invoker: newInvoker(runner, opts)}
}

// ListBranches returns the remote-tracking branch names with the remote
// prefix removed, in git's listing order.
func (b *BranchResolver) ListBranches(ctx context.Context, repo Repository) ([]string, error) {
	out, err := b.run(ctx, repo, "branch", "--remotes", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("list branches of %s: %w", repo.Name, err)
	}

	branches := parseRemoteBranches(string(out), b.opts.Remote)
	b.log().Debugf("Found %d branches", len(branches))
	return branches, nil
}

// ResolveHead returns the commit id at the head of the remote-tracking branch.
func (b *BranchResolver) ResolveHead(ctx context.Context, repo Repository, branch string) (string, error) {
	id, err := b.resolve(ctx, repo, "refs/remotes/"+b.opts.Remote+"/"+branch)
	if err != nil {
		var unknown *UnknownRevisionError
		if errors.As(err, &unknown) {
			unknown.Revision = branch
		}
		return "", err
	}
	b.log().Debugf("The branch head is: %s", id)
	return id, nil
}

// ResolveRevision returns the commit id a revision expression points to.
func (b *BranchResolver) ResolveRevision(ctx context.Context, repo Repository, rev string) (string, error) {
	return b.resolve(ctx, repo, rev)
}

// ResolveDefaultBranch lists branches and applies DefaultBranch.
func (b *BranchResolver) ResolveDefaultBranch(ctx context.Context, repo Repository) (string, error) {
	branches, err := b.ListBranches(ctx, repo)
	if err != nil {
		return "", err
	}
	branch, err := DefaultBranch(branches, b.opts.PreferredBranches...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", repo.Name, err)
	}
	return branch, nil
}

func (b *BranchResolver) resolve(ctx context.Context, repo Repository, rev string) (string, error) {
	if rev == "" || strings.HasPrefix(rev, "-") {
		return "", &UnknownRevisionError{Repo: repo.Name, Revision: rev}
	}

	out, err := b.run(ctx, repo, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		if errors.Is(err, ErrProcessFailed) {
			return "", &UnknownRevisionError{Repo: repo.Name, Revision: rev, Err: err}
		}
		return "", fmt.Errorf("resolve %s in %s: %w", rev, repo.Name, err)
	}

	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", &UnknownRevisionError{Repo: repo.Name, Revision: rev}
	}
	return id, nil
}

// DefaultBranch picks the branch used when none is given: the first entry of
// preferred that exists, otherwise the first listed branch. With no preferred
// names, DefaultPreferredBranches applies.
func DefaultBranch(branches []string, preferred ...string) (string, error) {
	if len(branches) == 0 {
		return "", ErrNoBranches
	}
	if len(preferred) == 0 {
		preferred = DefaultPreferredBranches
	}
	for _, name := range preferred {
		if slices.Contains(branches, name) {
			return name, nil
		}
	}
	return branches[0], nil
}

// FilterBranches keeps the branches matching any of the glob patterns.
// No patterns keeps everything.
func FilterBranches(branches, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return branches, nil
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid branch pattern %q", pattern)
		}
	}

	matched := make([]string, 0, len(branches))
	for _, branch := range branches {
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, branch); ok {
				matched = append(matched, branch)
				break
			}
		}
	}
	return matched, nil
}

// parseRemoteBranches strips exactly the "<remote>/" (or "remotes/<remote>/")
// prefix from each listed ref. Refs of other remotes and the symbolic HEAD are dropped.
func parseRemoteBranches(out, remote string) []string {
	prefix := remote + "/"
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if arrow := strings.Index(name, " -> "); arrow != -1 {
			name = name[:arrow]
		}
		name = strings.TrimPrefix(name, "remotes/")

		branch, ok := strings.CutPrefix(name, prefix)
		if !ok || branch == "" || branch == "HEAD" {
			continue
		}
		branches = append(branches, branch)
	}
	return branches
}
