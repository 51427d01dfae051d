package git

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

func genRecord() *rapid.Generator[CommitRecord] {
	return rapid.Custom(func(t *rapid.T) CommitRecord {
		return CommitRecord{
			ID:          rapid.StringMatching(`[0-9a-f]{40}`).Draw(t, "id"),
			Author:      rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,11} <[a-z]{1,8}@example\.com>`).Draw(t, "author"),
			AuthorDate:  rapid.StringMatching(`20[0-9]{2}-0[1-9]-[0-2][0-9]T[01][0-9]:[0-5][0-9]:[0-5][0-9]Z`).Draw(t, "authorDate"),
			Committer:   rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,11} <[a-z]{1,8}@example\.com>`).Draw(t, "committer"),
			CommitDate:  rapid.StringMatching(`20[0-9]{2}-0[1-9]-[0-2][0-9]T[01][0-9]:[0-5][0-9]:[0-5][0-9]\+09:00`).Draw(t, "commitDate"),
			Description: rapid.StringMatching(`[a-zA-Z0-9 ,.:;!'"()-]{0,60}`).Draw(t, "description"),
		}
	})
}

// --- Property Tests ---

func TestRapidParse_FullHistoryRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := rapid.SliceOfN(genRecord(), 0, 30).Draw(t, "records")

		got, err := ParseRecords([]byte(revListOutput(records)), ModeFullHistory)
		if err != nil {
			t.Fatalf("ParseRecords: %v", err)
		}
		if len(got) != len(records) {
			t.Fatalf("records = %d, expected %d", len(got), len(records))
		}
		for i := range records {
			if got[i] != records[i] {
				t.Fatalf("record[%d] = %#v, want %#v", i, got[i], records[i])
			}
		}
	})
}

func TestRapidParse_WindowedDropsOnlyCursor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		window := rapid.IntRange(0, 25).Draw(t, "window")
		records := rapid.SliceOfN(genRecord(), window+1, window+1).Draw(t, "records")

		got, err := ParseRecords([]byte(revListOutput(records)), ModeWindowed)
		if err != nil {
			t.Fatalf("ParseRecords: %v", err)
		}
		if len(got) != window {
			t.Fatalf("records = %d, expected %d", len(got), window)
		}
		for i := range got {
			if got[i] != records[i+1] {
				t.Fatalf("record[%d] = %#v, want %#v", i, got[i], records[i+1])
			}
		}
	})
}

func TestRapidParse_DescriptionCommasPreserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rec := genRecord().Draw(t, "record")
		parts := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,8}`), 2, 6).Draw(t, "parts")
		rec.Description = strings.Join(parts, ",")

		got, err := ParseRecords([]byte(revListOutput([]CommitRecord{rec})), ModeFullHistory)
		if err != nil {
			t.Fatalf("ParseRecords: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("records = %d, expected 1", len(got))
		}
		if got[0].Description != rec.Description {
			t.Fatalf("description = %q, want %q", got[0].Description, rec.Description)
		}
	})
}
