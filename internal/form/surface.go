// Package form keeps a third-party record form consistent while it is being
// filled: the code drives the type and account, and type plus name can
// generate the code.
package form

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/tiers/internal/model"
)

// Role names a logical field of the record form.
type Role string

const (
	RoleCode    Role = "code"
	RoleName    Role = "name"
	RoleType    Role = "type"
	RoleAccount Role = "account"
)

// AllRoles lists the four fields of a complete record form.
var AllRoles = []Role{RoleCode, RoleName, RoleType, RoleAccount}

// Field is a single form input.
type Field interface {
	Value() string
	SetValue(v string)
}

// Surface is the form as the controller sees it. Field and Shadow report
// false for inputs that do not exist. Candidates returns the account options
// backing the account field; label repairs made on the returned slice must be
// visible on the surface.
type Surface interface {
	Field(r Role) (Field, bool)
	Shadow(r Role) (Field, bool)
	AddShadow(r Role) Field
	SetDisabled(r Role, disabled bool)
	Candidates() []model.AccountCandidate
}

// Mode selects how much of the record stays user-editable.
type Mode string

const (
	// ModeDerived renders type and account disabled and submits them through
	// shadow fields.
	ModeDerived Mode = "derived"
	// ModeEditable keeps type editable; changing it regenerates the code.
	ModeEditable Mode = "editable"
)

// ParseMode accepts "derived" or "editable" in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDerived, ModeEditable:
		return m, nil
	default:
		return "", fmt.Errorf("unknown form mode %q", s)
	}
}

// Event identifies what triggered a field write.
type Event string

const (
	EventInit        Event = "init"
	EventCodeChanged Event = "code_changed"
	EventNameBlurred Event = "name_blurred"
	EventTypeChanged Event = "type_changed"
)

// Change describes one field whose value was changed by the controller.
type Change struct {
	Form   string
	Event  Event
	Role   Role
	Shadow bool
	Value  string
}

// Observer is notified of every change the controller makes.
type Observer func(Change)
