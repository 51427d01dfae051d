package cache

import (
	"strings"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between a cached snapshot and a fresh listing,
// one "<id> <description>" line per commit. Identical lists yield "".
func Diff(cached, fresh []git.CommitRecord) string {
	previous := renderLines(cached)
	current := renderLines(fresh)
	if previous == current {
		return ""
	}

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(current),
		FromFile: "cached",
		ToFile:   "fresh",
		Context:  3,
	}

	res, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return strings.TrimSpace(current)
	}
	return strings.TrimSpace(res)
}

func renderLines(commits []git.CommitRecord) string {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString(c.ID)
		b.WriteByte(' ')
		b.WriteString(c.Description)
		b.WriteByte('\n')
	}
	return b.String()
}
