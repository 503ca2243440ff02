package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-studio/internal/workspace"
)

// handleRun runs the session's selected mode
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, (*workspace.Session).Run)
}

// handleAudit audits the session's ATS parse
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, (*workspace.Session).Audit)
}

type generateFunc func(*workspace.Session, context.Context, *workspace.Runner) (*workspace.Outcome, error)

// generate answers with the outcome. Failed runs still carry their outcome,
// whose error field holds the message to show the user.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, op generateFunc) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.runner == nil {
		s.fail(w, ErrGatewayUnavailable)
		return
	}

	outcome, err := op(session, r.Context(), s.runner)
	if err != nil && outcome == nil {
		s.fail(w, err)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = HTTPStatus(err)
	}
	s.jsonResponse(w, status, outcome)
}
