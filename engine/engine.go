package engine

import (
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/scriptfs/callbacks"
	"github.com/wippyai/scriptfs/errors"
)

// Engine owns a goja runtime, its execution-context lock, and the callback
// registry for in-flight asynchronous operations.
//
// Only one caller may be inside the runtime at a time: the embedder via
// RunScript/Do, or a completion handler via an acquired Session. The mutex
// in the shared state is that serialization point.
type Engine struct {
	s *state
}

// state is shared between the Engine and its weak Refs. It intentionally
// outlives Close so that completion handlers still holding a Ref can probe
// liveness without keeping the runtime itself reachable.
type state struct {
	rt    *goja.Runtime
	cbs   *callbacks.Registry
	log   *zap.Logger
	mu    sync.Mutex
	alive bool
}

// Option configures engine creation.
type Option func(*state)

// WithLogger sets the engine's logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *state) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates an engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	s := &state{
		rt:    goja.New(),
		cbs:   callbacks.NewRegistry(),
		log:   zap.NewNop(),
		alive: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return &Engine{s: s}
}

// Do runs fn inside the engine's execution context. It returns an error if
// the engine has been closed. fn must not call back into Do, RunScript, or
// Close; the lock is not reentrant.
func (e *Engine) Do(fn func(rt *goja.Runtime)) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if !e.s.alive {
		return errors.Closed(errors.PhaseEngine, "engine")
	}
	fn(e.s.rt)
	return nil
}

// RunScript evaluates src inside the execution context and returns the
// result. Script exceptions come back as *goja.Exception errors.
func (e *Engine) RunScript(name, src string) (goja.Value, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if !e.s.alive {
		return nil, errors.Closed(errors.PhaseEngine, "engine")
	}
	return e.s.rt.RunScript(name, src)
}

// SetGlobal binds a value on the runtime's global object. Go functions are
// converted by goja's standard rules.
func (e *Engine) SetGlobal(name string, v any) error {
	var setErr error
	if err := e.Do(func(rt *goja.Runtime) {
		setErr = rt.Set(name, v)
	}); err != nil {
		return err
	}
	if setErr != nil {
		return errors.Wrap(errors.PhaseEngine, errors.KindInvalidInput, setErr, "set global "+name)
	}
	return nil
}

// Callbacks returns the engine's callback registry.
func (e *Engine) Callbacks() *callbacks.Registry {
	return e.s.cbs
}

// Ref returns a weak, non-owning reference to the engine for use by
// completion handlers. A Ref never extends the engine's lifetime.
func (e *Engine) Ref() Ref {
	return Ref{s: e.s}
}

// Close tears the engine down. It waits for any active session or script to
// finish, marks the engine dead, and drains the callback registry so
// handles held for operations that will never be delivered are released.
// Closing an already-closed engine is a no-op.
func (e *Engine) Close() error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if !e.s.alive {
		return nil
	}
	e.s.alive = false
	e.s.rt = nil

	if n := e.s.cbs.Drain(); n > 0 {
		e.s.log.Debug("engine closed with in-flight operations",
			zap.Int("dropped_groups", n))
	}
	return nil
}

// Ref is a validity-checked weak reference to an engine. Completion
// handlers capture a Ref at dispatch time and probe it on every re-entry.
type Ref struct {
	s *state
}

// Acquire resolves the reference and enters the engine's execution context.
// It returns false once the engine has been closed; the caller must then
// discard its result without side effects. On success the caller holds the
// execution lock until Session.Release.
func (r Ref) Acquire() (*Session, bool) {
	if r.s == nil {
		return nil, false
	}
	r.s.mu.Lock()
	if !r.s.alive {
		r.s.mu.Unlock()
		return nil, false
	}
	return &Session{s: r.s}, true
}

// Session is an exclusive entry into the engine's execution context.
type Session struct {
	s        *state
	released bool
}

// Runtime returns the locked goja runtime.
func (s *Session) Runtime() *goja.Runtime {
	return s.s.rt
}

// Callbacks returns the engine's callback registry.
func (s *Session) Callbacks() *callbacks.Registry {
	return s.s.cbs
}

// Release leaves the execution context. It is safe to call more than once.
func (s *Session) Release() {
	if s.released {
		return
	}
	s.released = true
	s.s.mu.Unlock()
}
