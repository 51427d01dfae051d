package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// HistoryFetcher reads a branch's history in full or one window at a time.
type HistoryFetcher struct {
	invoker
	branches *BranchResolver
}

// NewHistoryFetcher creates a fetcher that resolves branches with branches.
func NewHistoryFetcher(runner Runner, branches *BranchResolver, opts Options) *HistoryFetcher {
	return &HistoryFetcher{invoker: newInvoker(runner, opts), branches: branches}
}

// Fetch returns up to WindowSize commits of q.Branch, newest first.
//
// Without a cursor the window starts at the branch head. With a cursor the
// window starts right after it: git is asked for WindowSize+1 revisions
// starting at the cursor and the cursor's own record is dropped by the parser.
func (f *HistoryFetcher) Fetch(ctx context.Context, repo Repository, q HistoryQuery) ([]CommitRecord, error) {
	window := q.WindowSize
	if window <= 0 {
		window = DefaultWindowSize
	}

	branch, err := f.BranchOrDefault(ctx, repo, q.Branch)
	if err != nil {
		return nil, err
	}

	var start string
	var count int
	var mode ParseMode
	if q.Cursor == "" {
		start, err = f.branches.ResolveHead(ctx, repo, branch)
		count, mode = window, ModeFullHistory
	} else {
		start, err = f.branches.ResolveRevision(ctx, repo, q.Cursor)
		count, mode = window+1, ModeWindowed
	}
	if err != nil {
		return nil, err
	}

	commits, err := f.revList(ctx, repo, start, count, mode)
	if err != nil {
		return nil, fmt.Errorf("fetch commits of %s on %s: %w", repo.Name, branch, err)
	}
	if len(commits) > window {
		commits = commits[:window]
	}

	f.log().Debugf("Found %d commits on branch %s", len(commits), branch)
	for _, c := range commits {
		f.log().Debugf(" * %s", c.ID)
	}
	return commits, nil
}

// FetchAll returns the complete history reachable from the branch head.
func (f *HistoryFetcher) FetchAll(ctx context.Context, repo Repository, branch string) ([]CommitRecord, error) {
	branch, err := f.BranchOrDefault(ctx, repo, branch)
	if err != nil {
		return nil, err
	}
	head, err := f.branches.ResolveHead(ctx, repo, branch)
	if err != nil {
		return nil, err
	}

	commits, err := f.revList(ctx, repo, head, 0, ModeFullHistory)
	if err != nil {
		return nil, fmt.Errorf("fetch commits of %s on %s: %w", repo.Name, branch, err)
	}
	f.log().Debugf("Found %d commits on branch %s", len(commits), branch)
	return commits, nil
}

// GetCommit returns the metadata of a single revision.
func (f *HistoryFetcher) GetCommit(ctx context.Context, repo Repository, rev string) (CommitRecord, error) {
	id, err := f.branches.ResolveRevision(ctx, repo, rev)
	if err != nil {
		return CommitRecord{}, err
	}

	out, err := f.run(ctx, repo, "show", "--quiet", "--no-color", "--pretty=format:"+recordFormat, id)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("show %s in %s: %w", rev, repo.Name, err)
	}

	line, _, _ := strings.Cut(string(out), "\n")
	rec, err := DecodeRecord(line)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("show %s in %s: %w", rev, repo.Name, err)
	}
	f.log().Debugf("Retrieved metadata of commit %s", rec.ID)
	return rec, nil
}

// BranchOrDefault returns branch, or the default branch when it is empty.
func (f *HistoryFetcher) BranchOrDefault(ctx context.Context, repo Repository, branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	return f.branches.ResolveDefaultBranch(ctx, repo)
}

// revList runs rev-list from start. count <= 0 means no limit.
func (f *HistoryFetcher) revList(ctx context.Context, repo Repository, start string, count int, mode ParseMode) ([]CommitRecord, error) {
	args := []string{"rev-list", "--pretty=format:" + recordFormat}
	if count > 0 {
		args = append(args, "--max-count="+strconv.Itoa(count))
	}
	args = append(args, start)

	out, err := f.run(ctx, repo, args...)
	if err != nil {
		return nil, err
	}

	commits, err := ParseRecords(out, mode)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(commits, mode); err != nil {
		return nil, err
	}
	return commits, nil
}

func checkUnique(commits []CommitRecord, mode ParseMode) error {
	seen := make(map[string]struct{}, len(commits))
	for i, c := range commits {
		if _, dup := seen[c.ID]; dup {
			line := mode.firstRecordLine() + 2*i + 1
			return &MalformedRecordError{Line: line, Text: c.ID, Reason: "duplicate commit id"}
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
