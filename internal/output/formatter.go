package output

import (
	"io"
	"time"

	"github.com/masmgr/commitlog/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)
	_ CommitReportWriter = (*MarkdownCommitWriter)(nil)
	_ CommitReportWriter = (*CICommitWriter)(nil)

	_ BranchReportWriter = (*ConsoleBranchWriter)(nil)
	_ BranchReportWriter = (*JSONBranchWriter)(nil)
	_ BranchReportWriter = (*CSVBranchWriter)(nil)
	_ BranchReportWriter = (*MarkdownBranchWriter)(nil)
	_ BranchReportWriter = (*CIBranchWriter)(nil)

	_ SearchRunReportWriter = (*ConsoleSearchRunWriter)(nil)
	_ SearchRunReportWriter = (*JSONSearchRunWriter)(nil)
	_ SearchRunReportWriter = (*CSVSearchRunWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	// Stdout receives output when OutputPath is empty; nil means os.Stdout.
	Stdout io.Writer
}

// CommitReport is a list of commits produced by one command.
type CommitReport struct {
	Repo        string
	Branch      string
	Source      string // "git" or "cache"
	GeneratedAt time.Time
	Commits     []git.CommitRecord
}

// BranchReport lists remote branches of a repository.
type BranchReport struct {
	Repo          string
	DefaultBranch string
	GeneratedAt   time.Time
	Branches      []string
}

// SearchRunReport summarizes a concurrent search.
type SearchRunReport struct {
	Repo        string
	Filter      git.SearchFilter
	GeneratedAt time.Time
	Runs        []git.SearchRun
}

// CommitReportWriter writes commit reports.
type CommitReportWriter interface {
	Write(report *CommitReport, options OutputOptions) error
}

// BranchReportWriter writes branch reports.
type BranchReportWriter interface {
	Write(report *BranchReport, options OutputOptions) error
}

// SearchRunReportWriter writes concurrent search summaries.
type SearchRunReportWriter interface {
	Write(report *SearchRunReport, options OutputOptions) error
}

// NewCommitReportWriter creates a commit report writer for the specified format.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatMarkdown:
		return &MarkdownCommitWriter{}
	case FormatCI:
		return &CICommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}

// NewBranchReportWriter creates a branch report writer for the specified format.
func NewBranchReportWriter(format OutputFormat) BranchReportWriter {
	switch format {
	case FormatJSON:
		return &JSONBranchWriter{}
	case FormatCSV:
		return &CSVBranchWriter{}
	case FormatMarkdown:
		return &MarkdownBranchWriter{}
	case FormatCI:
		return &CIBranchWriter{}
	default:
		return &ConsoleBranchWriter{}
	}
}

// NewSearchRunReportWriter creates a search summary writer for the specified format.
// Markdown and CI fall back to JSON.
func NewSearchRunReportWriter(format OutputFormat) SearchRunReportWriter {
	switch format {
	case FormatJSON, FormatCI, FormatMarkdown:
		return &JSONSearchRunWriter{}
	case FormatCSV:
		return &CSVSearchRunWriter{}
	default:
		return &ConsoleSearchRunWriter{}
	}
}
