// Package activity keeps a CSV trail of the field writes made on record forms.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/tiers/internal/form"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp time.Time
	Form      string
	Event     form.Event
	Field     form.Role
	Shadow    bool
	Value     string
}

// Header is the CSV header for form-activity.csv.
const Header = "timestamp,form,event,field,target,value"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/form-activity.csv"
	colTimestamp = 0
	colForm      = 1
	colEvent     = 2
	colField     = 3
	colTarget    = 4
	colValue     = 5

	targetVisible = "visible"
	targetShadow  = "shadow"
)

// FromChange turns a controller change into a log entry stamped at ts.
func FromChange(c form.Change, ts time.Time) Entry {
	return Entry{
		Timestamp: ts,
		Form:      c.Form,
		Event:     c.Event,
		Field:     c.Role,
		Shadow:    c.Shadow,
		Value:     c.Value,
	}
}

// Recorder collects changes in memory until they are appended.
type Recorder struct {
	now     func() time.Time
	entries []Entry
}

// NewRecorder returns a Recorder stamping entries with the wall clock.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Observe implements form.Observer.
func (r *Recorder) Observe(c form.Change) {
	r.entries = append(r.entries, FromChange(c, r.now().UTC()))
}

// Entries returns everything recorded so far.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colForm] = e.Form
	row[colEvent] = string(e.Event)
	row[colField] = string(e.Field)
	row[colTarget] = targetVisible
	if e.Shadow {
		row[colTarget] = targetShadow
	}
	row[colValue] = e.Value
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var shadow bool
	switch record[colTarget] {
	case targetVisible:
	case targetShadow:
		shadow = true
	default:
		return Entry{}, fmt.Errorf("unknown target %q", record[colTarget])
	}

	return Entry{
		Timestamp: ts,
		Form:      record[colForm],
		Event:     form.Event(record[colEvent]),
		Field:     form.Role(record[colField]),
		Shadow:    shadow,
		Value:     record[colValue],
	}, nil
}

// Append writes entries to <repoRoot>/logs/form-activity.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/form-activity.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
