package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cleared-dev/tiers/internal/classify"
	"github.com/cleared-dev/tiers/internal/codegen"
	"github.com/cleared-dev/tiers/internal/form"
	"github.com/cleared-dev/tiers/internal/model"
)

var validate = validator.New()

// decode reads a JSON body into v and checks its validate tags.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid field %s: failed %s", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

// ClassifyRequest asks for the type encoded in a code.
type ClassifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// ClassifyResponse carries the classification of a code.
type ClassifyResponse struct {
	Prefix string          `json:"prefix"`
	Type   model.PartyType `json:"type"`
}

// classify handles POST /api/v1/classify.
func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	prefix, ok := classify.Prefix(req.Code)
	if !ok {
		s.metrics.Classifications.WithLabelValues("too_short").Inc()
		unprocessable(w, "code is shorter than 3 characters")
		return
	}
	t, ok := classify.Classify(prefix)
	if !ok {
		s.metrics.Classifications.WithLabelValues("unclassified").Inc()
		unprocessable(w, "no type for prefix "+prefix)
		return
	}
	s.metrics.Classifications.WithLabelValues("classified").Inc()
	writeJSON(w, http.StatusOK, ClassifyResponse{Prefix: prefix, Type: t})
}

// GenerateCodeRequest asks for the code of a record.
type GenerateCodeRequest struct {
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// GenerateCodeResponse carries a generated code.
type GenerateCodeResponse struct {
	Code string `json:"code"`
}

// generateCode handles POST /api/v1/codes.
func (s *Server) generateCode(w http.ResponseWriter, r *http.Request) {
	var req GenerateCodeRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	t, ok := model.ParsePartyType(req.Type)
	if !ok {
		badRequest(w, "unknown type "+req.Type)
		return
	}
	code := codegen.Generate(t, req.Name)
	if code == "" {
		unprocessable(w, "cannot generate a code for this type and name")
		return
	}
	writeJSON(w, http.StatusOK, GenerateCodeResponse{Code: code})
}

// listAccounts handles GET /api/v1/accounts.
func (s *Server) listAccounts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.chart.Candidates())
}

// CreateFormRequest pre-populates a new form.
type CreateFormRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Account string `json:"account"`
	Mode    string `json:"mode,omitempty"`
}

// createForm handles POST /api/v1/forms.
func (s *Server) createForm(w http.ResponseWriter, r *http.Request) {
	var req CreateFormRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	var mode form.Mode
	if req.Mode != "" {
		m, err := form.ParseMode(req.Mode)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		mode = m
	}

	sess := s.store.Create(NewFormParams{
		Code:    req.Code,
		Name:    req.Name,
		Type:    req.Type,
		Account: req.Account,
		Mode:    mode,
	})
	writeJSON(w, http.StatusCreated, sess.View())
}

// getForm handles GET /api/v1/forms/{id}.
func (s *Server) getForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// deleteForm handles DELETE /api/v1/forms/{id}.
func (s *Server) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid form ID")
		return
	}
	if err := s.store.Delete(id); err != nil {
		notFound(w, "form not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventRequest delivers one input event. Value, when present, is what the
// user entered in the field the event concerns.
type EventRequest struct {
	Event string  `json:"event" validate:"required"`
	Value *string `json:"value,omitempty"`
}

// formEvent handles POST /api/v1/forms/{id}/events.
func (s *Server) formEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req EventRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	view, err := sess.Apply(form.Event(req.Event), req.Value)
	event, outcome := req.Event, "applied"
	switch {
	case errors.Is(err, ErrUnknownEvent):
		event, outcome = "unknown", "rejected"
	case err != nil:
		outcome = "rejected"
	}
	s.metrics.FormEvents.WithLabelValues(event, outcome).Inc()

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, form.ErrFieldDisabled):
		conflict(w, err.Error())
	default:
		badRequest(w, err.Error())
	}
}

// formSubmission handles GET /api/v1/forms/{id}/submission.
func (s *Server) formSubmission(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Submission())
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid form ID")
		return nil, false
	}
	sess, err := s.store.Get(id)
	if err != nil {
		notFound(w, "form not found")
		return nil, false
	}
	return sess, true
}
