package healthcard

import (
	"context"
	"sync"
	"time"
)

// State is the per-employee registration workflow state.
type State string

const (
	StateUnregistered      State = "UNREGISTERED"
	StateBiometricPending  State = "BIOMETRIC_PENDING"
	StateBiometricCaptured State = "BIOMETRIC_CAPTURED"
	StateRegistered        State = "REGISTERED"
)

// captureTracker holds pre-submission workflow state in memory. Capture
// results only reach the store at submit time, so a cancelled or failed
// capture leaves no trace in the record.
type captureTracker struct {
	mu       sync.Mutex
	sessions map[string]*captureSession
	captured map[string]bool
}

type captureSession struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func newCaptureTracker() *captureTracker {
	return &captureTracker{
		sessions: make(map[string]*captureSession),
		captured: make(map[string]bool),
	}
}

// Begin starts an asynchronous capture for the employee. It reports false
// when a capture is already in flight. run is invoked on its own goroutine
// with a context that expires after timeout or when Cancel is called.
func (t *captureTracker) Begin(employeeID string, timeout time.Duration, run func(ctx context.Context) error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[employeeID]; ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	session := &captureSession{cancel: cancel, done: make(chan struct{})}
	t.sessions[employeeID] = session

	go func() {
		defer cancel()
		err := run(ctx)

		t.mu.Lock()
		session.err = err
		delete(t.sessions, employeeID)
		if err == nil {
			t.captured[employeeID] = true
		}
		t.mu.Unlock()

		close(session.done)
	}()

	return true
}

// Cancel aborts an in-flight capture. The discarded result never marks the
// employee as captured.
func (t *captureTracker) Cancel(employeeID string) bool {
	t.mu.Lock()
	session, ok := t.sessions[employeeID]
	t.mu.Unlock()

	if !ok {
		return false
	}
	session.cancel()
	return true
}

// Wait blocks until the in-flight capture (if any) finishes or ctx expires.
// It returns the capture outcome; a nil error with captured=false means no
// capture was pending.
func (t *captureTracker) Wait(ctx context.Context, employeeID string) (bool, error) {
	t.mu.Lock()
	session, pending := t.sessions[employeeID]
	captured := t.captured[employeeID]
	t.mu.Unlock()

	if !pending {
		return captured, nil
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-session.done:
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.captured[employeeID], session.err
}

// Captured reports whether biometrics were captured and not yet submitted.
func (t *captureTracker) Captured(employeeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.captured[employeeID]
}

// ClearCaptured drops the in-memory flag once the record is persisted.
func (t *captureTracker) ClearCaptured(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.captured, employeeID)
}

// State derives the workflow state. registered wins over any in-memory
// capture bookkeeping.
func (t *captureTracker) State(employeeID string, registered bool) State {
	if registered {
		return StateRegistered
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[employeeID]; ok {
		return StateBiometricPending
	}
	if t.captured[employeeID] {
		return StateBiometricCaptured
	}
	return StateUnregistered
}
