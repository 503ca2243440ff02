package server

import (
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/workspace"
)

// CreateSessionResponse represents the response for POST /sessions
type CreateSessionResponse struct {
	SessionID string          `json:"session_id"`
	Token     string          `json:"token"`
	State     workspace.State `json:"state"`
}

// handleListModes returns the mode catalog
func (s *Server) handleListModes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"modes":  types.Catalog(),
		"fields": types.AllFields(),
	})
}

// handleCreateSession opens a session and issues its token
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	session, err := s.sessions.Create()
	if err != nil {
		s.fail(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(session.ID)
	if err != nil {
		log.Printf("Failed to issue token for session %s: %v", session.ID, err)
		_ = s.sessions.Delete(session.ID)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{
		SessionID: session.ID,
		Token:     token,
		State:     session.Snapshot(),
	})
}

// handleGetSession returns the full session state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, session.Snapshot())
}

// handleDeleteSession discards a session and its histories
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetMode switches the active mode, clearing previous outcomes
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req types.SetModeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, newValidationError(err))
		return
	}

	mode, err := types.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	session.SetMode(mode)
	s.jsonResponse(w, http.StatusOK, session.Snapshot())
}

// session looks up the {id} session, writing an error response when it is gone.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*workspace.Session, bool) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return session, true
}
