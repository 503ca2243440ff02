// Package workspace holds editing sessions: the per-field undo/redo
// histories, the selected mode and the outcome of the latest run.
package workspace

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/history"
	"github.com/jonathan/resume-studio/internal/types"
)

// Outcome is the result of the latest run or audit. Exactly one of Result
// and Error is set.
type Outcome struct {
	Mode        types.Mode `json:"mode"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
}

// State is a point-in-time copy of a session.
type State struct {
	ID        string             `json:"id"`
	Mode      types.Mode         `json:"mode"`
	Fields    []types.FieldState `json:"fields"`
	Running   bool               `json:"running"`
	Auditing  bool               `json:"auditing"`
	Outcome   *Outcome           `json:"outcome,omitempty"`
	Audit     *Outcome           `json:"audit,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// FieldEvent is published after a field changes.
type FieldEvent struct {
	SessionID string           `json:"session_id"`
	State     types.FieldState `json:"state"`
}

// Session is one user's workbench. All methods are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	now        func() time.Time
	lastActive time.Time
	mode       types.Mode
	fields     map[types.Field]*history.Store[string]
	outcome    *Outcome
	audit      *Outcome
	running    bool
	auditing   bool

	// epoch changes on every mode switch so late replies for a previous
	// mode are dropped.
	epoch int

	subscribers map[int]func(FieldEvent)
	nextSubID   int
	done        chan struct{}
	closeOnce   sync.Once
}

func newSession(historyLimit int, now func() time.Time) *Session {
	created := now()
	s := &Session{
		ID:          uuid.New().String(),
		CreatedAt:   created,
		now:         now,
		lastActive:  created,
		mode:        types.ModeAnalysis,
		fields:      make(map[types.Field]*history.Store[string], len(types.AllFields())),
		subscribers: make(map[int]func(FieldEvent)),
		done:        make(chan struct{}),
	}

	for _, f := range types.AllFields() {
		store := history.New("", history.WithLimit(historyLimit))
		field := f
		store.Subscribe(func(string) {
			s.publish(field)
		})
		s.fields[f] = store
	}
	return s
}

// SetField commits value to a field's history. Committing the current value
// changes nothing and publishes no event.
func (s *Session) SetField(field types.Field, value string) (types.FieldState, error) {
	return s.withField(field, func(store *history.Store[string]) {
		store.SetValue(value)
	})
}

// Undo steps a field back one entry. It is a no-op at the oldest entry.
func (s *Session) Undo(field types.Field) (types.FieldState, error) {
	return s.withField(field, func(store *history.Store[string]) {
		store.Undo()
	})
}

// Redo steps a field forward one entry. It is a no-op at the newest entry.
func (s *Session) Redo(field types.Field) (types.FieldState, error) {
	return s.withField(field, func(store *history.Store[string]) {
		store.Redo()
	})
}

// Field returns the state of a field.
func (s *Session) Field(field types.Field) (types.FieldState, error) {
	return s.withField(field, func(*history.Store[string]) {})
}

func (s *Session) withField(field types.Field, fn func(*history.Store[string])) (types.FieldState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.fields[field]
	if !ok {
		return types.FieldState{}, ErrUnknownField
	}
	s.lastActive = s.now()
	fn(store)
	return fieldState(field, store), nil
}

func fieldState(field types.Field, store *history.Store[string]) types.FieldState {
	return types.FieldState{
		Field:   field,
		Value:   store.Value(),
		CanUndo: store.CanUndo(),
		CanRedo: store.CanRedo(),
		Depth:   store.Len(),
		Cursor:  store.Cursor(),
	}
}

// Mode returns the selected mode.
func (s *Session) Mode() types.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode selects a mode and clears the previous outcome and audit.
// Field histories are kept.
func (s *Session) SetMode(mode types.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	s.mode = mode
	s.outcome = nil
	s.audit = nil
	s.epoch++
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		ID:        s.ID,
		Mode:      s.mode,
		Fields:    make([]types.FieldState, 0, len(s.fields)),
		Running:   s.running,
		Auditing:  s.auditing,
		Outcome:   copyOutcome(s.outcome),
		Audit:     copyOutcome(s.audit),
		CreatedAt: s.CreatedAt,
	}
	for _, f := range types.AllFields() {
		state.Fields = append(state.Fields, fieldState(f, s.fields[f]))
	}
	return state
}

func copyOutcome(o *Outcome) *Outcome {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// CheckInputs returns an *InputError when a required field of mode is blank.
func (s *Session) CheckInputs(mode types.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkInputsLocked(mode)
}

func (s *Session) checkInputsLocked(mode types.Mode) error {
	req := mode.Requirements()
	for _, f := range req.Fields {
		if strings.TrimSpace(s.fields[f].Value()) == "" {
			return &InputError{Mode: mode, Message: req.Message}
		}
	}
	return nil
}

// Run executes the selected mode against the current field values. The
// previous outcome and audit are cleared first. Missing inputs produce an
// *InputError and a failed gateway call a *RunError; both are also recorded
// as the session outcome. The session lock is not held while the gateway
// call is in flight.
func (s *Session) Run(ctx context.Context, runner *Runner) (*Outcome, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	s.lastActive = s.now()
	mode := s.mode
	s.outcome = nil
	s.audit = nil

	if err := s.checkInputsLocked(mode); err != nil {
		s.outcome = &Outcome{Mode: mode, Error: err.Error(), CompletedAt: s.now()}
		outcome := copyOutcome(s.outcome)
		s.mu.Unlock()
		return outcome, err
	}

	inputs := make(map[string]string, len(mode.Inputs()))
	for _, f := range mode.Inputs() {
		inputs[string(f)] = s.fields[f].Value()
	}
	s.running = true
	epoch := s.epoch
	s.mu.Unlock()

	result, runErr := runner.Generate(ctx, mode, inputs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false

	outcome := &Outcome{Mode: mode, Result: result, CompletedAt: s.now()}
	if runErr != nil {
		outcome.Result = nil
		outcome.Error = runErr.Error()
	}
	if epoch == s.epoch {
		s.outcome = outcome
	}
	return copyOutcome(outcome), runErr
}

// Audit reviews the stored ATS parse. It fails with ErrNothingToAudit unless
// the latest outcome is a successful ATS run.
func (s *Session) Audit(ctx context.Context, runner *Runner) (*Outcome, error) {
	s.mu.Lock()
	if s.auditing {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	parsed, ok := s.atsResultLocked()
	if !ok {
		s.mu.Unlock()
		return nil, ErrNothingToAudit
	}

	doc, err := json.Marshal(parsed)
	if err != nil {
		s.mu.Unlock()
		return nil, newRunError(types.ModeATSAudit, err)
	}

	s.lastActive = s.now()
	s.audit = nil
	s.auditing = true
	epoch := s.epoch
	s.mu.Unlock()

	result, runErr := runner.Generate(ctx, types.ModeATSAudit, map[string]string{
		"ats_result": string(doc),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditing = false

	outcome := &Outcome{Mode: types.ModeATSAudit, Result: result, CompletedAt: s.now()}
	if runErr != nil {
		outcome.Result = nil
		outcome.Error = runErr.Error()
	}
	if epoch == s.epoch {
		s.audit = outcome
	}
	return copyOutcome(outcome), runErr
}

func (s *Session) atsResultLocked() (*types.ATSResult, bool) {
	if s.outcome == nil || s.outcome.Mode != types.ModeATS || s.outcome.Error != "" {
		return nil, false
	}
	parsed, ok := s.outcome.Result.(*types.ATSResult)
	if !ok || parsed == nil || len(*parsed) == 0 {
		return nil, false
	}
	return parsed, true
}

// Subscribe registers fn for field change events. fn runs with the session
// lock held and must not call back into the session. The returned func
// removes the subscription.
func (s *Session) Subscribe(fn func(FieldEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// publish runs inside history notifications, so the lock is already held.
func (s *Session) publish(field types.Field) {
	if len(s.subscribers) == 0 {
		return
	}
	event := FieldEvent{SessionID: s.ID, State: fieldState(field, s.fields[field])}
	for _, fn := range s.subscribers {
		fn(event)
	}
}

// Done is closed when the session is removed from its manager.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LastActive returns the time of the last operation on the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
