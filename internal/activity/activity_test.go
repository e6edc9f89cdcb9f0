package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tiers/internal/form"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Form:      "tiers-1",
		Event:     form.EventCodeChanged,
		Field:     form.RoleAccount,
		Shadow:    true,
		Value:     "401",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "tiers-1", entries[0].Form)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Form = "tiers-2"
	e2.Event = form.EventNameBlurred
	e2.Field = form.RoleCode
	e2.Shadow = false
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tiers-1", entries[0].Form)
	assert.Equal(t, "tiers-2", entries[1].Form)
	assert.False(t, entries[1].Shadow)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Form, got.Form)
	assert.Equal(t, original.Event, got.Event)
	assert.Equal(t, original.Field, got.Field)
	assert.Equal(t, original.Shadow, got.Shadow)
	assert.Equal(t, original.Value, got.Value)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "form-activity.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalEntry(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Equal(t, []string{"2025-01-15T10:30:00Z", "tiers-1", "code_changed", "account", "shadow", "401"}, row)

	e := testEntry()
	e.Shadow = false
	assert.Equal(t, "visible", MarshalEntry(e)[colTarget])
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 fields")

	row := MarshalEntry(testEntry())
	row[colTarget] = "hidden"
	_, err = UnmarshalEntry(row)
	require.Error(t, err)

	row = MarshalEntry(testEntry())
	row[colTimestamp] = "yesterday"
	_, err = UnmarshalEntry(row)
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.now = func() time.Time { return testTime }

	f := form.NewMemoryForm(nil)
	f.Set(form.RoleCode, "422BOB")
	form.New("tiers-3", f, form.WithObserver(rec.Observe)).Init()

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Timestamp: testTime, Form: "tiers-3", Event: form.EventInit, Field: form.RoleType, Value: "EMPLOYEE"}, entries[0])
	assert.True(t, entries[1].Shadow)

	dir := t.TempDir()
	require.NoError(t, Append(dir, entries))
	got, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
