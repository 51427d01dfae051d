package git

import (
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// recordFormat is the pretty format requested from git for every commit line.
// Field order is fixed: id, author, author date, committer, commit date, subject.
const recordFormat = "%H,%an <%ae>,%aI,%cn <%ce>,%cI,%s"

// recordFields is the number of comma-separated fields in a record line.
const recordFields = 6

// DefaultWindowSize is the page size used when a history query does not set one.
const DefaultWindowSize = 100

// DefaultRemote is the remote whose tracking branches are read.
const DefaultRemote = "origin"

// CommitRecord represents one revision as reported by git.
type CommitRecord struct {
	ID          string `json:"commit"`
	Author      string `json:"author"`
	AuthorDate  string `json:"author_date"`
	Committer   string `json:"committer"`
	CommitDate  string `json:"commit_date"`
	Description string `json:"description"`
}

// CommitTime parses the committer timestamp.
func (c CommitRecord) CommitTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.CommitDate)
}

// Repository identifies a local clone by display name and filesystem path.
type Repository struct {
	Name string
	Path string
}

// OpenRepository checks that path holds a git repository before any git process is spawned.
func OpenRepository(name, path string) (Repository, error) {
	if _, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: false}); err != nil {
		return Repository{}, fmt.Errorf("open repository %s at %s: %w", name, path, err)
	}
	return Repository{Name: name, Path: path}, nil
}

// HistoryQuery selects a window of a branch's history.
type HistoryQuery struct {
	Branch     string // empty selects the default branch
	Cursor     string // last id of the previous page; empty starts at the branch head
	WindowSize int    // <= 0 means DefaultWindowSize
}

// SearchFilter restricts a search. Empty fields impose no constraint.
type SearchFilter struct {
	Author      string
	Committer   string
	Description string
}

// IsEmpty reports whether the filter matches every commit.
func (f SearchFilter) IsEmpty() bool {
	return f.Author == "" && f.Committer == "" && f.Description == ""
}

// SearchRun summarizes one worker of a concurrent search.
type SearchRun struct {
	Worker  int
	Commits int
	Elapsed time.Duration
}
