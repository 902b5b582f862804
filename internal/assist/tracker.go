package assist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrCancelled marks a task whose result was discarded.
var ErrCancelled = errors.New("assist task cancelled")

var errScopeClosed = errors.New("scope closed")

// Tracker groups in-flight tasks by the view that started them so a view
// being torn down can drop every pending answer at once.
type Tracker struct {
	mu     sync.Mutex
	scopes map[string]map[string]context.CancelCauseFunc
}

func NewTracker() *Tracker {
	return &Tracker{scopes: make(map[string]map[string]context.CancelCauseFunc)}
}

// Run executes fn under scope. If the scope is cancelled or ctx ends before
// fn returns, the result is discarded and ErrCancelled is returned.
func (t *Tracker) Run(ctx context.Context, scope string, fn func(ctx context.Context) (string, error)) (string, error) {
	taskCtx, cancel := context.WithCancelCause(ctx)
	id := t.add(scope, cancel)
	defer func() {
		t.remove(scope, id)
		cancel(nil)
	}()

	out, err := fn(taskCtx)

	if taskCtx.Err() != nil {
		return "", fmt.Errorf("%w: %v", ErrCancelled, context.Cause(taskCtx))
	}
	return out, err
}

// CancelScope cancels every in-flight task of scope and returns how many
// there were.
func (t *Tracker) CancelScope(scope string) int {
	t.mu.Lock()
	tasks := t.scopes[scope]
	delete(t.scopes, scope)
	t.mu.Unlock()

	for _, cancel := range tasks {
		cancel(errScopeClosed)
	}
	return len(tasks)
}

// Pending reports the number of in-flight tasks under scope.
func (t *Tracker) Pending(scope string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.scopes[scope])
}

func (t *Tracker) add(scope string, cancel context.CancelCauseFunc) string {
	id := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, ok := t.scopes[scope]
	if !ok {
		tasks = make(map[string]context.CancelCauseFunc)
		t.scopes[scope] = tasks
	}
	tasks[id] = cancel
	return id
}

func (t *Tracker) remove(scope, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, ok := t.scopes[scope]
	if !ok {
		return
	}
	delete(tasks, id)
	if len(tasks) == 0 {
		delete(t.scopes, scope)
	}
}
