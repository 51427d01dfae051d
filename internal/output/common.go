package output

import (
	"io"
	"os"

	"github.com/masmgr/commitlog/internal/git"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05"
	shortIDLength        = 8
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}

// displayDate renders the commit date in UTC short form,
// falling back to the raw value when it does not parse.
func displayDate(c git.CommitRecord) string {
	t, err := c.CommitTime()
	if err != nil {
		return c.CommitDate
	}
	return t.UTC().Format(reportDateTimeLayout)
}

func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		if options.Stdout != nil {
			return options.Stdout, nil, nil
		}
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
