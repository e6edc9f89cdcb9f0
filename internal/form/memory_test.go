package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryForm_Input(t *testing.T) {
	f := NewMemoryForm(nil, RoleCode, RoleType)

	require.NoError(t, f.Input(RoleCode, "401"))
	assert.Equal(t, "401", f.Value(RoleCode))

	err := f.Input(RoleName, "Acme")
	require.ErrorIs(t, err, ErrNoField)

	f.SetDisabled(RoleType, true)
	err = f.Input(RoleType, "SUPPLIER")
	require.ErrorIs(t, err, ErrFieldDisabled)

	f.Set(RoleType, "SUPPLIER")
	assert.Equal(t, "SUPPLIER", f.Value(RoleType))
}

func TestMemoryForm_SubmissionSkipsDisabled(t *testing.T) {
	f := NewMemoryForm(nil)
	f.Set(RoleCode, "401ACM")
	f.Set(RoleType, "SUPPLIER")
	f.SetDisabled(RoleType, true)

	sub := f.Submission()
	assert.Equal(t, "401ACM", sub.Get("code"))
	_, ok := sub["type"]
	assert.False(t, ok)

	f.AddShadow(RoleType).SetValue("SUPPLIER")
	assert.Equal(t, []string{"SUPPLIER"}, f.Submission()["type"])
}

func TestMemoryForm_DuplicateShadowsVisible(t *testing.T) {
	f := NewMemoryForm(nil)
	f.SetDisabled(RoleAccount, true)
	f.AddShadow(RoleAccount).SetValue("1")
	f.AddShadow(RoleAccount).SetValue("2")

	assert.Equal(t, 2, f.ShadowCount(RoleAccount))
	assert.Equal(t, []string{"1", "2"}, f.Submission()["account"])

	sh, ok := f.Shadow(RoleAccount)
	require.True(t, ok)
	assert.Equal(t, "1", sh.Value())

	// An enabled visible field submits alongside its shadows.
	f.SetDisabled(RoleAccount, false)
	assert.Equal(t, []string{"", "1", "2"}, f.Submission()["account"])
}

func TestMemoryForm_Snapshot(t *testing.T) {
	f := NewMemoryForm(testCandidates())
	f.Set(RoleCode, "401ACM")
	f.SetDisabled(RoleAccount, true)
	f.AddShadow(RoleAccount).SetValue("1")

	s := f.Snapshot()
	assert.Equal(t, FieldState{Value: "401ACM"}, s.Fields[RoleCode])
	assert.True(t, s.Fields[RoleAccount].Disabled)
	assert.Equal(t, "1", s.Shadows[RoleAccount])
	require.Len(t, s.Candidates, 3)

	// The snapshot is a copy.
	s.Candidates[0].Label = "changed"
	assert.Equal(t, "401 - Suppliers", f.Candidates()[0].Label)
}
