package server

import (
	"net/http"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/workspace"
)

// handleGetField returns a field's value and history position
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	s.withField(w, r, (*workspace.Session).Field)
}

// handleSetField commits a new value to a field's history
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req types.SetFieldRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, newValidationError(err))
		return
	}

	s.withField(w, r, func(session *workspace.Session, field types.Field) (types.FieldState, error) {
		return session.SetField(field, req.Value)
	})
}

// handleUndoField steps a field back one entry
func (s *Server) handleUndoField(w http.ResponseWriter, r *http.Request) {
	s.withField(w, r, (*workspace.Session).Undo)
}

// handleRedoField steps a field forward one entry
func (s *Server) handleRedoField(w http.ResponseWriter, r *http.Request) {
	s.withField(w, r, (*workspace.Session).Redo)
}

func (s *Server) withField(w http.ResponseWriter, r *http.Request, op func(*workspace.Session, types.Field) (types.FieldState, error)) {
	field, err := types.ParseField(r.PathValue("field"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "field", Message: err.Error()})
		return
	}

	session, ok := s.session(w, r)
	if !ok {
		return
	}

	state, err := op(session, field)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}
