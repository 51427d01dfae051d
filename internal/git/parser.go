package git

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ParseMode selects where record pairs start in rev-list output.
//
// git rev-list --pretty prints two lines per revision: a "commit <id>" header
// that is discarded and the formatted record line. In full-history mode the
// first record line is line 1. In windowed mode the first pair belongs to the
// pagination cursor, which was requested only as the traversal start, so the
// first record line is line 3.
type ParseMode int

const (
	ModeFullHistory ParseMode = iota
	ModeWindowed
)

// String returns a string representation of the mode.
func (m ParseMode) String() string {
	switch m {
	case ModeFullHistory:
		return "full-history"
	case ModeWindowed:
		return "windowed"
	default:
		return "unknown"
	}
}

func (m ParseMode) firstRecordLine() int {
	if m == ModeWindowed {
		return 3
	}
	return 1
}

// RecordDecoder turns rev-list output into commit records one physical line
// at a time, so output can be decoded while the process is still writing it.
type RecordDecoder struct {
	mode ParseMode
	next int // 0-based index of the next line
}

// NewRecordDecoder creates a decoder for the given mode.
func NewRecordDecoder(mode ParseMode) *RecordDecoder {
	return &RecordDecoder{mode: mode}
}

// Feed consumes one line. ok is true when the line completed a record.
func (d *RecordDecoder) Feed(line string) (rec CommitRecord, ok bool, err error) {
	idx := d.next
	d.next++

	first := d.mode.firstRecordLine()
	if idx < first || (idx-first)%2 != 0 {
		return CommitRecord{}, false, nil
	}
	if line == "" {
		return CommitRecord{}, false, nil
	}

	rec, err = decodeRecordLine(line, idx+1)
	if err != nil {
		return CommitRecord{}, false, err
	}
	return rec, true, nil
}

// LineHandler adapts the decoder to Runner.Stream, calling fn per record.
func (d *RecordDecoder) LineHandler(fn func(CommitRecord) error) LineHandler {
	return func(line string) error {
		rec, ok, err := d.Feed(line)
		if err != nil || !ok {
			return err
		}
		return fn(rec)
	}
}

// StreamRecords decodes records from r and calls fn for each, in input order.
func StreamRecords(r io.Reader, mode ParseMode, fn func(CommitRecord) error) error {
	handleErr, scanErr := scanLines(r, NewRecordDecoder(mode).LineHandler(fn))
	if handleErr != nil {
		return handleErr
	}
	return scanErr
}

// ParseRecords decodes buffered rev-list output.
func ParseRecords(raw []byte, mode ParseMode) ([]CommitRecord, error) {
	var records []CommitRecord
	err := StreamRecords(bytes.NewReader(raw), mode, func(rec CommitRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeRecord decodes a single formatted record line.
func DecodeRecord(line string) (CommitRecord, error) {
	return decodeRecordLine(strings.TrimRight(line, "\r\n"), 1)
}

func decodeRecordLine(line string, lineNo int) (CommitRecord, error) {
	line = strings.ToValidUTF8(line, "\uFFFD")

	// The subject is the remainder of the line and may contain commas.
	fields := strings.SplitN(line, ",", recordFields)
	if len(fields) < recordFields {
		return CommitRecord{}, &MalformedRecordError{
			Line:   lineNo,
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", recordFields, len(fields)),
		}
	}
	if strings.TrimSpace(fields[0]) == "" {
		return CommitRecord{}, &MalformedRecordError{Line: lineNo, Text: line, Reason: "empty commit id"}
	}

	return CommitRecord{
		ID:          fields[0],
		Author:      fields[1],
		AuthorDate:  fields[2],
		Committer:   fields[3],
		CommitDate:  fields[4],
		Description: fields[5],
	}, nil
}
