package server

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/form"
)

var (
	// ErrFormNotFound is returned for unknown or discarded form ids.
	ErrFormNotFound = errors.New("form not found")
	// ErrUnknownEvent is returned for events the controller does not handle.
	ErrUnknownEvent = errors.New("unknown event")
)

// Session is one open record form. Events on a session are applied one at a time.
type Session struct {
	mu   sync.Mutex
	id   uuid.UUID
	form *form.MemoryForm
	ctrl *form.Controller
}

// View is the JSON shape of a session.
type View struct {
	ID    uuid.UUID `json:"id"`
	Mode  form.Mode `json:"mode"`
	Ready bool      `json:"ready"`
	form.Snapshot
}

// NewFormParams pre-populates a form, e.g. from a stored record.
type NewFormParams struct {
	Code    string
	Name    string
	Type    string
	Account string
	Mode    form.Mode
}

// Store holds the open form sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	chart    *accounts.Service
	mode     form.Mode
	logger   *zap.Logger
	metrics  *Metrics // nil disables instrumentation
}

// NewStore creates a Store offering the accounts of chart. Forms use mode
// unless their creation request names another one.
func NewStore(chart *accounts.Service, mode form.Mode, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		chart:    chart,
		mode:     mode,
		logger:   logger,
	}
}

// Create opens a new form and initializes its controller.
func (s *Store) Create(p NewFormParams) *Session {
	mode := p.Mode
	if mode == "" {
		mode = s.mode
	}

	id := uuid.New()
	f := form.NewMemoryForm(s.chart.Candidates())
	f.Set(form.RoleCode, p.Code)
	f.Set(form.RoleName, p.Name)
	f.Set(form.RoleType, p.Type)
	f.Set(form.RoleAccount, p.Account)

	opts := []form.Option{form.WithMode(mode), form.WithLogger(s.logger)}
	if s.metrics != nil {
		opts = append(opts, form.WithObserver(s.metrics.observe))
	}
	ctrl := form.New(id.String(), f, opts...)
	ctrl.Init()

	sess := &Session{id: id, form: f, ctrl: ctrl}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.FormsCreated.Inc()
		s.metrics.FormsOpen.Inc()
	}
	return sess
}

// Get returns an open session.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrFormNotFound)
	}
	return sess, nil
}

// Delete discards a session.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrFormNotFound)
	}
	delete(s.sessions, id)
	if s.metrics != nil {
		s.metrics.FormsOpen.Dec()
	}
	return nil
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Apply writes value into the field the event concerns, when value is
// non-nil, then runs the matching handler.
func (sess *Session) Apply(ev form.Event, value *string) (View, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var role form.Role
	var handle func()
	switch ev {
	case form.EventCodeChanged:
		role, handle = form.RoleCode, sess.ctrl.CodeChanged
	case form.EventNameBlurred:
		role, handle = form.RoleName, sess.ctrl.NameBlurred
	case form.EventTypeChanged:
		role, handle = form.RoleType, sess.ctrl.TypeChanged
	default:
		return View{}, fmt.Errorf("%q: %w", ev, ErrUnknownEvent)
	}

	if value != nil {
		if err := sess.form.Input(role, *value); err != nil {
			return View{}, err
		}
	}
	handle()
	return sess.view(), nil
}

// View returns the current state of the session.
func (sess *Session) View() View {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view()
}

// Submission returns what the form would post right now.
func (sess *Session) Submission() url.Values {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.form.Submission()
}

func (sess *Session) view() View {
	return View{
		ID:       sess.id,
		Mode:     sess.ctrl.Mode(),
		Ready:    sess.ctrl.Ready(),
		Snapshot: sess.form.Snapshot(),
	}
}
