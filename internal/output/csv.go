package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// CSVCommitWriter writes commit reports as CSV.
type CSVCommitWriter struct{}

// Write outputs the commit report as CSV, one row per commit with full fields.
func (w *CSVCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Commit", "Author", "AuthorDate", "Committer", "CommitDate", "Description"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, c := range limitTop(report.Commits, options.Top) {
		row := []string{c.ID, c.Author, c.AuthorDate, c.Committer, c.CommitDate, c.Description}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVBranchWriter writes branch reports as CSV.
type CSVBranchWriter struct{}

// Write outputs the branch report as CSV.
func (w *CSVBranchWriter) Write(report *BranchReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Branch", "Default"}); err != nil {
		return err
	}
	for _, b := range limitTop(report.Branches, options.Top) {
		if err := writer.Write([]string{b, strconv.FormatBool(b == report.DefaultBranch)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVSearchRunWriter writes concurrent search summaries as CSV.
type CSVSearchRunWriter struct{}

// Write outputs the search summary as CSV.
func (w *CSVSearchRunWriter) Write(report *SearchRunReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Worker", "Commits", "ElapsedSeconds"}); err != nil {
		return err
	}
	for _, r := range report.Runs {
		row := []string{
			fmt.Sprintf("%d", r.Worker),
			fmt.Sprintf("%d", r.Commits),
			fmt.Sprintf("%.6f", r.Elapsed.Seconds()),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(options OutputOptions) (*csv.Writer, *os.File, error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(out), file, nil
}
