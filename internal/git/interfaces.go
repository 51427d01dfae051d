package git

import "context"

// BranchSource lists branches and resolves revisions.
type BranchSource interface {
	ListBranches(ctx context.Context, repo Repository) ([]string, error)
	ResolveHead(ctx context.Context, repo Repository, branch string) (string, error)
	ResolveDefaultBranch(ctx context.Context, repo Repository) (string, error)
}

// HistorySource reads the history of a single branch.
type HistorySource interface {
	Fetch(ctx context.Context, repo Repository, q HistoryQuery) ([]CommitRecord, error)
	FetchAll(ctx context.Context, repo Repository, branch string) ([]CommitRecord, error)
	GetCommit(ctx context.Context, repo Repository, rev string) (CommitRecord, error)
	BranchOrDefault(ctx context.Context, repo Repository, branch string) (string, error)
}

// CommitSearcher searches commits across all refs.
type CommitSearcher interface {
	Search(ctx context.Context, repo Repository, filter SearchFilter) ([]CommitRecord, error)
	ConcurrentSearch(ctx context.Context, repo Repository, filter SearchFilter, workers int) ([]SearchRun, error)
}

// Compile-time interface conformance checks.
var (
	_ BranchSource   = (*BranchResolver)(nil)
	_ HistorySource  = (*HistoryFetcher)(nil)
	_ CommitSearcher = (*SearchFetcher)(nil)
)
