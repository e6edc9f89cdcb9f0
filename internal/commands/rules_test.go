package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"401000", "SUPPLIER"},
		{"411ABC", "CUSTOMER"},
		{"422xyz", "EMPLOYEE"},
	}
	for _, tt := range tests {
		out, err := runTiers(t, "classify", tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, strings.TrimSpace(out))
	}

	_, err := runTiers(t, "classify", "999ABC")
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	out, err := runTiers(t, "generate", "--type", "supplier", "Acme", "Corp")
	require.NoError(t, err)
	assert.Equal(t, "401ACM", strings.TrimSpace(out))

	out, err = runTiers(t, "generate", "--type", "CUSTOMER", "A1")
	require.NoError(t, err)
	assert.Equal(t, "411A", strings.TrimSpace(out))

	_, err = runTiers(t, "generate", "--type", "EMPLOYEE", "123")
	require.Error(t, err)

	_, err = runTiers(t, "generate", "Acme")
	require.Error(t, err, "--type is required")
}

func TestResolve(t *testing.T) {
	dir := initProject(t)

	out, err := runTiers(t, "resolve", "--repo", dir, "411ACM")
	require.NoError(t, err)
	assert.Equal(t, "411\t411", strings.TrimSpace(out))

	_, err = runTiers(t, "resolve", "--repo", dir, "999ABC")
	require.Error(t, err)
}

func TestResolve_NoProject(t *testing.T) {
	_, err := runTiers(t, "resolve", "--repo", t.TempDir(), "401ACM")
	require.Error(t, err, "chart of accounts is missing")
}
