package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/classify"
	"github.com/cleared-dev/tiers/internal/codegen"
	"github.com/cleared-dev/tiers/internal/model"
)

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateInert
)

// Controller applies the classification rules to one form. Handlers must be
// called one at a time; a Controller is not safe for concurrent use.
type Controller struct {
	id       string
	surface  Surface
	mode     Mode
	logger   *zap.Logger
	reporter Reporter
	observer Observer

	state   state
	code    Field
	name    Field // optional in ModeDerived
	typ     Field
	account Field

	shadowType    Field
	shadowAccount Field
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode sets the form mode. The default is ModeDerived.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithLogger sets the logger used for derivation traces.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithReporter sets where configuration errors go. The default logs them.
func WithReporter(r Reporter) Option {
	return func(c *Controller) { c.reporter = r }
}

// WithObserver registers a callback for every field change.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// New creates a controller for the form identified by id. Call Init before
// delivering events.
func New(id string, s Surface, opts ...Option) *Controller {
	c := &Controller{
		id:      id,
		surface: s,
		mode:    ModeDerived,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.reporter == nil {
		c.reporter = NewZapReporter(c.logger)
	}
	return c
}

// ID returns the form identifier.
func (c *Controller) ID() string { return c.id }

// Mode returns the form mode.
func (c *Controller) Mode() Mode { return c.mode }

// Ready reports whether Init wired the form successfully.
func (c *Controller) Ready() bool { return c.state == stateReady }

func (c *Controller) requiredRoles() []Role {
	if c.mode == ModeEditable {
		return AllRoles
	}
	return []Role{RoleCode, RoleType, RoleAccount}
}

// Init wires the controller to its fields. Missing fields are reported once
// and leave the controller inert. A pre-filled code is classified right away.
// Calling Init again has no effect.
func (c *Controller) Init() {
	if c.state != stateUninitialized {
		return
	}

	var missing []Role
	fields := make(map[Role]Field, len(AllRoles))
	for _, r := range AllRoles {
		f, ok := c.surface.Field(r)
		if ok {
			fields[r] = f
		}
	}
	for _, r := range c.requiredRoles() {
		if _, ok := fields[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		c.state = stateInert
		c.reporter.ReportMissingFields(c.id, missing)
		return
	}

	c.code = fields[RoleCode]
	c.name = fields[RoleName]
	c.typ = fields[RoleType]
	c.account = fields[RoleAccount]

	if c.mode == ModeDerived {
		c.surface.SetDisabled(RoleType, true)
		c.surface.SetDisabled(RoleAccount, true)
		c.shadowType = c.upsertShadow(RoleType, c.typ)
		c.shadowAccount = c.upsertShadow(RoleAccount, c.account)
	}

	c.state = stateReady
	c.logger.Debug("form ready", zap.String("form", c.id), zap.String("mode", string(c.mode)))

	c.derive(EventInit)
}

// upsertShadow returns the existing shadow for r or creates it, and seeds it
// with the visible value so untouched pre-filled values still submit.
func (c *Controller) upsertShadow(r Role, visible Field) Field {
	sh, ok := c.surface.Shadow(r)
	if !ok {
		sh = c.surface.AddShadow(r)
	}
	if sh.Value() != visible.Value() {
		sh.SetValue(visible.Value())
	}
	return sh
}

// CodeChanged handles an edit of the code field.
func (c *Controller) CodeChanged() {
	if c.state != stateReady {
		return
	}
	c.derive(EventCodeChanged)
}

// NameBlurred handles the name field losing focus. It only fills in a code
// when the code field is still empty.
func (c *Controller) NameBlurred() {
	if c.state != stateReady || c.name == nil {
		return
	}
	if strings.TrimSpace(c.code.Value()) != "" {
		return
	}
	c.generate(EventNameBlurred)
}

// TypeChanged handles a direct edit of the type field. Only editable forms
// react; derived forms never let the user pick the type.
func (c *Controller) TypeChanged() {
	if c.state != stateReady || c.mode != ModeEditable {
		return
	}
	c.generate(EventTypeChanged)
}

// generate overwrites the code from the current type and name, then
// classifies the new code once.
func (c *Controller) generate(ev Event) {
	name := c.name.Value()
	if name == "" {
		return
	}
	t, _ := model.ParsePartyType(c.typ.Value())
	code := codegen.Generate(t, name)
	if code == "" {
		c.logger.Debug("no code generated", zap.String("form", c.id), zap.String("type", string(t)))
		return
	}
	c.set(ev, RoleCode, c.code, false, code)
	c.derive(ev)
}

// derive classifies the current code and resolves its account. Nothing is
// touched when the code is too short or its prefix is unknown.
func (c *Controller) derive(ev Event) {
	prefix, ok := classify.Prefix(c.code.Value())
	if !ok {
		return
	}
	t, ok := classify.Classify(prefix)
	if !ok {
		c.logger.Debug("unclassified prefix", zap.String("form", c.id), zap.String("prefix", prefix))
		return
	}
	c.mirror(ev, RoleType, c.typ, c.shadowType, string(t))

	cands := c.surface.Candidates()
	accounts.NormalizeLabels(prefix, cands)
	id, ok := accounts.Resolve(prefix, cands)
	if !ok {
		c.logger.Debug("no account for prefix", zap.String("form", c.id), zap.String("prefix", prefix))
		return
	}
	c.mirror(ev, RoleAccount, c.account, c.shadowAccount, id)
}

func (c *Controller) mirror(ev Event, r Role, visible, shadow Field, v string) {
	c.set(ev, r, visible, false, v)
	if shadow != nil {
		c.set(ev, r, shadow, true, v)
	}
}

func (c *Controller) set(ev Event, r Role, f Field, shadow bool, v string) {
	if f.Value() == v {
		return
	}
	f.SetValue(v)
	c.logger.Debug("field updated",
		zap.String("form", c.id),
		zap.String("event", string(ev)),
		zap.String("field", string(r)),
		zap.Bool("shadow", shadow),
		zap.String("value", v),
	)
	if c.observer != nil {
		c.observer(Change{Form: c.id, Event: ev, Role: r, Shadow: shadow, Value: v})
	}
}
