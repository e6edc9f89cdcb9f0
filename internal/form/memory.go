package form

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/cleared-dev/tiers/internal/model"
)

var (
	// ErrNoField is returned when input targets a field the form does not have.
	ErrNoField = errors.New("no such field")
	// ErrFieldDisabled is returned when input targets a disabled field.
	ErrFieldDisabled = errors.New("field is disabled")
)

type memField struct {
	value    string
	disabled bool
}

func (f *memField) Value() string     { return f.value }
func (f *memField) SetValue(v string) { f.value = v }

type memShadow struct {
	role  Role
	field *memField
}

// MemoryForm is an in-process Surface. Shadow fields are kept in creation
// order so duplicates stay observable.
type MemoryForm struct {
	fields     map[Role]*memField
	shadows    []memShadow
	candidates []model.AccountCandidate
}

// NewMemoryForm builds a form with the given fields, or all four when roles
// is empty. The form owns candidates from now on.
func NewMemoryForm(candidates []model.AccountCandidate, roles ...Role) *MemoryForm {
	if len(roles) == 0 {
		roles = AllRoles
	}
	fields := make(map[Role]*memField, len(roles))
	for _, r := range roles {
		fields[r] = &memField{}
	}
	return &MemoryForm{fields: fields, candidates: candidates}
}

// Field implements Surface.
func (m *MemoryForm) Field(r Role) (Field, bool) {
	f, ok := m.fields[r]
	if !ok {
		return nil, false
	}
	return f, true
}

// Shadow implements Surface.
func (m *MemoryForm) Shadow(r Role) (Field, bool) {
	for _, s := range m.shadows {
		if s.role == r {
			return s.field, true
		}
	}
	return nil, false
}

// AddShadow implements Surface. It always appends a new shadow field.
func (m *MemoryForm) AddShadow(r Role) Field {
	f := &memField{}
	m.shadows = append(m.shadows, memShadow{role: r, field: f})
	return f
}

// SetDisabled implements Surface.
func (m *MemoryForm) SetDisabled(r Role, disabled bool) {
	if f, ok := m.fields[r]; ok {
		f.disabled = disabled
	}
}

// Candidates implements Surface.
func (m *MemoryForm) Candidates() []model.AccountCandidate {
	return m.candidates
}

// Set pre-fills a field, bypassing the disabled state. Unknown fields are ignored.
func (m *MemoryForm) Set(r Role, v string) {
	if f, ok := m.fields[r]; ok {
		f.value = v
	}
}

// Input writes v the way a user would: disabled fields reject it.
func (m *MemoryForm) Input(r Role, v string) error {
	f, ok := m.fields[r]
	if !ok {
		return fmt.Errorf("%s: %w", r, ErrNoField)
	}
	if f.disabled {
		return fmt.Errorf("%s: %w", r, ErrFieldDisabled)
	}
	f.value = v
	return nil
}

// Value returns the visible value of a field, or "" when it does not exist.
func (m *MemoryForm) Value(r Role) string {
	if f, ok := m.fields[r]; ok {
		return f.value
	}
	return ""
}

// Disabled reports whether a field is rendered disabled.
func (m *MemoryForm) Disabled(r Role) bool {
	f, ok := m.fields[r]
	return ok && f.disabled
}

// ShadowCount returns how many shadow fields exist for r.
func (m *MemoryForm) ShadowCount(r Role) int {
	n := 0
	for _, s := range m.shadows {
		if s.role == r {
			n++
		}
	}
	return n
}

// Submission returns what the form posts: every enabled field plus every
// shadow field, keyed by field name. Disabled fields are not submitted.
func (m *MemoryForm) Submission() url.Values {
	out := url.Values{}
	for _, r := range AllRoles {
		f, ok := m.fields[r]
		if !ok || f.disabled {
			continue
		}
		out.Add(string(r), f.value)
	}
	for _, s := range m.shadows {
		out.Add(string(s.role), s.field.value)
	}
	return out
}

// FieldState is the visible state of one field.
type FieldState struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Snapshot is a point-in-time copy of a MemoryForm.
type Snapshot struct {
	Fields     map[Role]FieldState      `json:"fields"`
	Shadows    map[Role]string          `json:"shadows,omitempty"`
	Candidates []model.AccountCandidate `json:"candidates"`
}

// Snapshot copies the current form state.
func (m *MemoryForm) Snapshot() Snapshot {
	s := Snapshot{
		Fields:     make(map[Role]FieldState, len(m.fields)),
		Candidates: append([]model.AccountCandidate(nil), m.candidates...),
	}
	for r, f := range m.fields {
		s.Fields[r] = FieldState{Value: f.value, Disabled: f.disabled}
	}
	if len(m.shadows) > 0 {
		s.Shadows = make(map[Role]string, len(m.shadows))
		for _, sh := range m.shadows {
			if _, seen := s.Shadows[sh.role]; !seen {
				s.Shadows[sh.role] = sh.field.value
			}
		}
	}
	return s
}
