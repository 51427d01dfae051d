package output

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgGreen)
	idColor      = color.New(color.FgYellow)
	defaultColor = color.New(color.FgCyan, color.Bold)
)

// ConsoleCommitWriter writes commit lists as an aligned table.
type ConsoleCommitWriter struct{}

// Write outputs the commit report to the console.
func (w *ConsoleCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	commits := limitTop(report.Commits, options.Top)

	headingColor.Fprintln(out, "Commits")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	if report.Branch != "" {
		fmt.Fprintf(out, "Branch: %s\n", report.Branch)
	}
	if report.Source != "" {
		fmt.Fprintf(out, "Source: %s\n", report.Source)
	}
	fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Commits))

	if len(commits) == 0 {
		fmt.Fprintln(out, "No commits found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCommit\tAuthor\tDate\tDescription")
	for i, c := range commits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			idColor.Sprint(shortID(c.ID)),
			c.Author,
			displayDate(c),
			truncateMessage(c.Description, 60),
		)
	}
	return tw.Flush()
}

// ConsoleBranchWriter writes branch lists to the console.
type ConsoleBranchWriter struct{}

// Write outputs the branch report to the console. The default branch is highlighted.
func (w *ConsoleBranchWriter) Write(report *BranchReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headingColor.Fprintln(out, "Branches")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Total branches: %d\n\n", len(report.Branches))

	for _, b := range limitTop(report.Branches, options.Top) {
		if b == report.DefaultBranch {
			fmt.Fprintf(out, "* %s\n", defaultColor.Sprint(b))
			continue
		}
		fmt.Fprintf(out, "  %s\n", b)
	}
	return nil
}

// ConsoleSearchRunWriter writes per-worker search timings to the console.
type ConsoleSearchRunWriter struct{}

// Write outputs the search summary to the console.
func (w *ConsoleSearchRunWriter) Write(report *SearchRunReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headingColor.Fprintln(out, "Concurrent Search Results")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Workers: %d\n\n", len(report.Runs))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Worker\tCommits\tElapsed")
	for _, run := range report.Runs {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", run.Worker, run.Commits, run.Elapsed.Round(time.Microsecond))
	}
	return tw.Flush()
}
