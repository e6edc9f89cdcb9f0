package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	assert.Len(t, svc.All(), len(chart))
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get(411)
	assert.True(t, ok)
	assert.Equal(t, "Customers", acct.Name)

	_, ok = svc.Get(9999)
	assert.False(t, ok)

	assert.True(t, svc.Exists(401))
	assert.False(t, svc.Exists(9999))
}

func TestByClass(t *testing.T) {
	svc := NewService(DefaultChart())
	assert.Len(t, svc.ByClass(4), len(DefaultChart()))
	assert.Empty(t, svc.ByClass(6))
}

func TestCandidates(t *testing.T) {
	svc := NewService(DefaultChart())

	cands := svc.Candidates()
	require.Len(t, cands, len(DefaultChart()))
	assert.Equal(t, "40", cands[0].ID)
	assert.Equal(t, "40 - Suppliers and related accounts", cands[0].Label)

	// Repairs on one list do not leak into the next.
	cands[1].Label = "401"
	assert.Equal(t, "401 - Suppliers, payables", svc.Candidates()[1].Label)
}

func TestLoadFromTestdata(t *testing.T) {
	dir := t.TempDir()
	acctDir := filepath.Join(dir, "accounts")
	require.NoError(t, os.MkdirAll(acctDir, 0o755))

	src, err := os.ReadFile("testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(acctDir, "chart-of-accounts.csv"), src, 0o644))

	svc, err := Load(dir, "")
	require.NoError(t, err)
	assert.Len(t, svc.All(), 8)
	assert.True(t, svc.Exists(422))
	assert.Len(t, svc.ByClass(4), 7)
}

func TestLoadAbsolutePath(t *testing.T) {
	abs, err := filepath.Abs("testdata/chart-of-accounts.csv")
	require.NoError(t, err)

	svc, err := Load(t.TempDir(), abs)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 8)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir, "")
	require.NoError(t, err)
	assert.Len(t, svc2.All(), len(chart))

	for _, orig := range chart {
		got, ok := svc2.Get(orig.ID)
		require.True(t, ok, "account %d should exist", orig.ID)
		assert.Equal(t, orig, got)
	}
}
