package output

import (
	"fmt"
	"strings"
)

// MarkdownCommitWriter writes commit reports as Markdown.
type MarkdownCommitWriter struct{}

// Write outputs the commit report as a Markdown table.
func (w *MarkdownCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Commits")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.Repo))
	if report.Branch != "" {
		fmt.Fprintf(out, "**Branch:** %s\n\n", escapeMarkdown(report.Branch))
	}
	fmt.Fprintf(out, "**Total Commits:** %d\n\n", len(report.Commits))

	fmt.Fprintln(out, "| # | Commit | Author | Date | Description |")
	fmt.Fprintln(out, "|---|--------|--------|------|-------------|")
	for i, c := range limitTop(report.Commits, options.Top) {
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s |\n",
			i+1, shortID(c.ID), escapeMarkdown(c.Author), displayDate(c),
			escapeMarkdown(c.Description))
	}

	return nil
}

// MarkdownBranchWriter writes branch reports as a Markdown list.
type MarkdownBranchWriter struct{}

// Write outputs the branch report as Markdown.
func (w *MarkdownBranchWriter) Write(report *BranchReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Branches")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.Repo))
	for _, b := range limitTop(report.Branches, options.Top) {
		if b == report.DefaultBranch {
			fmt.Fprintf(out, "- **%s** (default)\n", escapeMarkdown(b))
			continue
		}
		fmt.Fprintf(out, "- %s\n", escapeMarkdown(b))
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
