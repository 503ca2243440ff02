package server

import (
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/workspace"
)

// eventBuffer is how many field events may queue for a slow client before
// new ones are dropped.
const eventBuffer = 64

// handleEvents streams field changes of a session via SSE. The first event
// is the full session state.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	events := make(chan workspace.FieldEvent, eventBuffer)
	unsubscribe := session.Subscribe(func(e workspace.FieldEvent) {
		select {
		case events <- e:
		default:
			log.Printf("[events] dropping %s event for session %s", e.State.Field, e.SessionID)
		}
	})
	defer unsubscribe()

	if err := sse.WriteState(session.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.shutdown:
			sse.WriteClosed("server shutting down")
			return
		case <-session.Done():
			sse.WriteClosed("session closed")
			return
		case e := <-events:
			if err := sse.WriteField(e); err != nil {
				log.Printf("Error writing SSE event: %v", err)
				return
			}
		}
	}
}
