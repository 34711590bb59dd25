// Package session implements the trace-driver session façade of spec
// §4.5: a process-wide registry of in-flight traces, guarded the way
// the teacher's symbol cache guards its map, plus the five lifecycle
// operations the HTTP surface calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kaushal171205/Code-Visualizer/compiler"
	"github.com/Kaushal171205/Code-Visualizer/object"
	"github.com/Kaushal171205/Code-Visualizer/trace"
)

// ErrNotFound is returned when an operation names an unknown or
// already-ended session id.
var ErrNotFound = errors.New("session: not found")

// ErrInternal wraps an unexpected fault raised while building a trace.
var ErrInternal = errors.New("session: internal error")

// CompilationError carries the native validator's combined diagnostic
// text for a rejected source (spec §4.5 "Compilation Error").
type CompilationError struct {
	Diagnostics string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("session: compilation error: %s", e.Diagnostics)
}

// Manager is the process-wide session registry (spec §5 "Shared
// resources": "One process-wide session registry ... requires mutual
// exclusion"). Grounded on the teacher's cache.SymbolCache: a
// sync.RWMutex-guarded map with the same read/write separation.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*object.Session

	engine   *trace.Engine
	validate func(ctx context.Context, source string) (bool, string, error)
	logger   *slog.Logger
}

// NewManager returns a ready Manager. validator performs the native
// syntactic check (spec §4.5); logger is required and is used exactly
// the way the teacher threads config.Config.Logger.
func NewManager(validator *compiler.Validator, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*object.Session),
		engine:   trace.New(),
		validate: validator.Validate,
		logger:   logger,
	}
}

// Start compiles and traces source, registers a new session on success,
// and returns its id, total step count, and initial (step 0) state
// (spec §4.5 "start_session").
func (m *Manager) Start(ctx context.Context, source string) (id string, totalSteps int, initial object.State, err error) {
	ok, diagnostics, verr := m.validate(ctx, source)
	if verr != nil {
		if errors.Is(verr, compiler.ErrTimeout) {
			return "", 0, object.State{}, &CompilationError{Diagnostics: diagnostics}
		}
		m.logger.Error("compiler validation failed", "error", verr)
		return "", 0, object.State{}, fmt.Errorf("%w: %v", ErrInternal, verr)
	}
	if !ok {
		return "", 0, object.State{}, &CompilationError{Diagnostics: diagnostics}
	}

	states, rerr := m.engine.Run(source)
	if rerr != nil {
		m.logger.Error("trace engine failed", "error", rerr)
		return "", 0, object.State{}, fmt.Errorf("%w: %v", ErrInternal, rerr)
	}

	id = uuid.NewString()
	sess := &object.Session{
		ID:          id,
		Source:      source,
		States:      states,
		CurrentStep: 0,
		CreatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	m.logger.Info("session started", "sessionId", id, "totalSteps", len(states))
	return id, len(states), states[0], nil
}

// StepForward advances current_step, clamped to the last step (spec
// §4.5 / P4): repeated calls at the last step are idempotent and report
// atEnd=true.
func (m *Manager) StepForward(id string) (state object.State, step, totalSteps int, atEnd bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return object.State{}, 0, 0, false, ErrNotFound
	}
	if sess.CurrentStep < len(sess.States)-1 {
		sess.CurrentStep++
	}
	atEnd = sess.CurrentStep == len(sess.States)-1
	return sess.States[sess.CurrentStep], sess.CurrentStep, len(sess.States), atEnd, nil
}

// StepBackward retreats current_step, clamped to 0 (spec §4.5 / P4):
// repeated calls at step 0 are idempotent and report atStart=true.
func (m *Manager) StepBackward(id string) (state object.State, step, totalSteps int, atStart bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return object.State{}, 0, 0, false, ErrNotFound
	}
	if sess.CurrentStep > 0 {
		sess.CurrentStep--
	}
	atStart = sess.CurrentStep == 0
	return sess.States[sess.CurrentStep], sess.CurrentStep, len(sess.States), atStart, nil
}

// GetState performs a random-access read of step k, failing on an
// out-of-range k (spec §4.5 "get_state").
func (m *Manager) GetState(id string, k int) (state object.State, totalSteps int, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return object.State{}, 0, ErrNotFound
	}
	if k < 0 || k >= len(sess.States) {
		return object.State{}, len(sess.States), fmt.Errorf("session: step %d out of range [0,%d)", k, len(sess.States))
	}
	return sess.States[k], len(sess.States), nil
}

// End drops the trace. Idempotent: ending an already-gone session
// reports ErrNotFound (spec §4.5 "end_session").
func (m *Manager) End(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session ended", "sessionId", id)
	return nil
}
