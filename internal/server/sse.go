package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/workspace"
)

// Event names sent on a session stream.
const (
	EventState  = "state"
	EventField  = "field"
	EventClosed = "closed"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteState sends the full session state, the first event of every stream
func (s *SSEWriter) WriteState(state workspace.State) error {
	return s.WriteEvent(EventState, state)
}

// WriteField sends one field change
func (s *SSEWriter) WriteField(e workspace.FieldEvent) error {
	return s.WriteEvent(EventField, e)
}

// WriteClosed sends a final event telling the client the stream is over
func (s *SSEWriter) WriteClosed(reason string) {
	s.WriteEvent(EventClosed, map[string]string{"reason": reason}) //nolint:errcheck
}
