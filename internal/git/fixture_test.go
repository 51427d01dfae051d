package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// fixtureRepo is a repository whose remote-tracking refs are written directly,
// so no network or real remote is needed.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	n    int
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &fixtureRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (f *fixtureRepo) commit(msg, author, committer string) plumbing.Hash {
	f.t.Helper()
	f.n++

	rel := "file.txt"
	if err := os.WriteFile(filepath.Join(f.dir, rel), []byte(msg+"\n"), 0o644); err != nil {
		f.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := f.wt.Add(rel); err != nil {
		f.t.Fatalf("Add: %v", err)
	}

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.n) * time.Hour)
	hash, err := f.wt.Commit(msg, &gogit.CommitOptions{
		Author:    &object.Signature{Name: author, Email: "author@example.com", When: when},
		Committer: &object.Signature{Name: committer, Email: "committer@example.com", When: when},
	})
	if err != nil {
		f.t.Fatalf("Commit: %v", err)
	}
	return hash
}

func (f *fixtureRepo) remoteBranch(name string, hash plumbing.Hash) {
	f.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", name), hash)
	if err := f.repo.Storer.SetReference(ref); err != nil {
		f.t.Fatalf("SetReference(%s): %v", name, err)
	}
}

func (f *fixtureRepo) checkout(branch string, create bool) {
	f.t.Helper()
	if err := f.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}); err != nil {
		f.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (f *fixtureRepo) open() Repository {
	f.t.Helper()
	repo, err := OpenRepository("fixture", f.dir)
	if err != nil {
		f.t.Fatalf("OpenRepository: %v", err)
	}
	return repo
}

func TestFixture_PaginationAndSearch(t *testing.T) {
	fx := newFixtureRepo(t)

	var master []plumbing.Hash
	for _, msg := range []string{"initial", "add parser", "fix, bug in parser", "docs", "release, v1"} {
		master = append(master, fx.commit(msg, "Jane", "Jane"))
	}
	fx.remoteBranch("master", master[len(master)-1])

	fx.checkout("feature-x", true)
	feature := fx.commit(`feature by O'Brien "quoted"`, `O'Brien "Q"`, "Bob")
	fx.remoteBranch("feature-x", feature)
	fx.checkout("master", false)

	repo := fx.open()
	ctx := context.Background()
	runner := NewExecRunner(10*time.Second, nil)
	resolver := NewBranchResolver(runner, Options{})
	fetcher := NewHistoryFetcher(runner, resolver, Options{})
	searcher := NewSearchFetcher(runner, Options{})

	branches, err := resolver.ListBranches(ctx, repo)
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("branches = %q, expected 2", branches)
	}
	def, err := resolver.ResolveDefaultBranch(ctx, repo)
	if err != nil || def != "master" {
		t.Fatalf("default branch = %q, %v", def, err)
	}

	// Page through master two commits at a time.
	var pages [][]CommitRecord
	cursor := ""
	for {
		page, err := fetcher.Fetch(ctx, repo, HistoryQuery{Branch: "master", Cursor: cursor, WindowSize: 2})
		if err != nil {
			t.Fatalf("Fetch(cursor=%q): %v", cursor, err)
		}
		if len(page) == 0 {
			break
		}
		pages = append(pages, page)
		cursor = page[len(page)-1].ID
	}

	var ids []string
	for _, page := range pages {
		if len(page) > 2 {
			t.Fatalf("page size = %d, expected <= 2", len(page))
		}
		for _, c := range page {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) != len(master) {
		t.Fatalf("paged ids = %d, expected %d", len(ids), len(master))
	}
	for i, id := range ids {
		if want := master[len(master)-1-i].String(); id != want {
			t.Fatalf("ids[%d] = %s, want %s", i, id, want)
		}
	}

	all, err := fetcher.FetchAll(ctx, repo, "")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != len(master) {
		t.Fatalf("FetchAll = %d commits, expected %d", len(all), len(master))
	}
	if all[2].Description != "fix, bug in parser" {
		t.Fatalf("description = %q", all[2].Description)
	}
	if all[0].Author != "Jane <author@example.com>" || all[0].Committer != "Jane <committer@example.com>" {
		t.Fatalf("identities = %q / %q", all[0].Author, all[0].Committer)
	}

	found, err := searcher.Search(ctx, repo, SearchFilter{Author: `O'Brien "Q"`})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].ID != feature.String() {
		t.Fatalf("Search(author) = %#v", found)
	}

	found, err = searcher.Search(ctx, repo, SearchFilter{Description: "parser"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Search(description) = %d commits, expected 2", len(found))
	}

	everything, err := searcher.Search(ctx, repo, SearchFilter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(everything) != len(master)+1 {
		t.Fatalf("Search(all) = %d commits, expected %d", len(everything), len(master)+1)
	}

	one, err := fetcher.GetCommit(ctx, repo, master[1].String())
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	if one.Description != "add parser" {
		t.Fatalf("GetCommit description = %q", one.Description)
	}

	if _, err := resolver.ResolveHead(ctx, repo, "no-such-branch"); !errors.Is(err, ErrUnknownRevision) {
		t.Fatalf("ResolveHead(no-such-branch) error = %v", err)
	}
}

func TestFixture_SearchMatchesLiterally(t *testing.T) {
	fx := newFixtureRepo(t)
	bot := fx.commit("bump dependency [x.y]", "dependabot[bot]", "dependabot[bot]")
	dotted := fx.commit("by a dot", "a.b", "a.b")
	fx.commit("by axb", "axb", "axb")
	fx.remoteBranch("master", fx.commit("tip", "Jane", "Jane"))

	repo := fx.open()
	searcher := NewSearchFetcher(NewExecRunner(10*time.Second, nil), Options{})

	tests := []struct {
		name   string
		filter SearchFilter
		want   []plumbing.Hash
	}{
		{name: "BracketedAuthor", filter: SearchFilter{Author: "dependabot[bot]"}, want: []plumbing.Hash{bot}},
		{name: "LoneBracket", filter: SearchFilter{Author: "["}, want: []plumbing.Hash{bot}},
		{name: "DotIsNotWildcard", filter: SearchFilter{Author: "a.b"}, want: []plumbing.Hash{dotted}},
		{name: "BracketedCommitter", filter: SearchFilter{Committer: "[bot]"}, want: []plumbing.Hash{bot}},
		{name: "BracketedDescription", filter: SearchFilter{Description: "[x.y]"}, want: []plumbing.Hash{bot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := searcher.Search(context.Background(), repo, tt.filter)
			if err != nil {
				t.Fatalf("Search(%+v): %v", tt.filter, err)
			}
			if len(found) != len(tt.want) {
				t.Fatalf("Search(%+v) = %d commits, expected %d", tt.filter, len(found), len(tt.want))
			}
			for i, hash := range tt.want {
				if found[i].ID != hash.String() {
					t.Fatalf("found[%d] = %s, want %s", i, found[i].ID, hash)
				}
			}
		})
	}
}

func TestFixture_NoRemoteBranches(t *testing.T) {
	fx := newFixtureRepo(t)
	fx.commit("initial", "Jane", "Jane")

	resolver := NewBranchResolver(NewExecRunner(10*time.Second, nil), Options{})
	if _, err := resolver.ResolveDefaultBranch(context.Background(), fx.open()); !errors.Is(err, ErrNoBranches) {
		t.Fatalf("error = %v, expected ErrNoBranches", err)
	}
}

func TestOpenRepository_NotARepository(t *testing.T) {
	if _, err := OpenRepository("nope", t.TempDir()); err == nil {
		t.Fatalf("expected error for a directory without a repository")
	}
}
