package bridge

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	scriptfs "github.com/wippyai/scriptfs"
	"github.com/wippyai/scriptfs/engine"
	"github.com/wippyai/scriptfs/errors"
	"github.com/wippyai/scriptfs/values"
)

// DefaultNamespace is the global name the bridge installs under when none
// is given.
const DefaultNamespace = "_fileSystem"

// Bridge exposes a FileSystem service to script code as a namespace object
// with asynchronous operations: read, readFromFile, write, move, remove,
// stat.
type Bridge struct {
	eng *engine.Engine
	fs  scriptfs.FileSystem
	log *zap.Logger
	ns  string
}

// Option configures bridge creation.
type Option func(*Bridge)

// WithLogger sets the bridge's logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a bridge between eng and fs.
func New(eng *engine.Engine, fs scriptfs.FileSystem, opts ...Option) (*Bridge, error) {
	if eng == nil {
		return nil, errors.InvalidInput(errors.PhaseSetup, "engine cannot be nil")
	}
	if fs == nil {
		return nil, errors.InvalidInput(errors.PhaseSetup, "filesystem service cannot be nil")
	}

	b := &Bridge{
		eng: eng,
		fs:  fs,
		log: zap.NewNop(),
		ns:  DefaultNamespace,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Install attaches the namespace object to the engine's global scope under
// name (DefaultNamespace if empty).
func (b *Bridge) Install(name string) error {
	if name != "" {
		b.ns = name
	}
	var setupErr error
	if err := b.eng.Do(func(rt *goja.Runtime) {
		obj := rt.NewObject()
		if setupErr = b.setup(rt, obj); setupErr != nil {
			return
		}
		setupErr = rt.Set(b.ns, obj)
	}); err != nil {
		return err
	}
	if setupErr != nil {
		return errors.Wrap(errors.PhaseSetup, errors.KindInvalidInput, setupErr, "install namespace "+b.ns)
	}
	return nil
}

// setup attaches the six operations to obj. Must run inside the engine's
// execution context.
func (b *Bridge) setup(rt *goja.Runtime, obj *goja.Object) error {
	ops := []struct {
		name string
		fn   func(goja.FunctionCall) goja.Value
	}{
		{"read", b.read(rt)},
		{"readFromFile", b.readFromFile(rt)},
		{"write", b.write(rt)},
		{"move", b.move(rt)},
		{"remove", b.remove(rt)},
		{"stat", b.stat(rt)},
	}
	for _, op := range ops {
		if err := obj.Set(op.name, op.fn); err != nil {
			return err
		}
	}
	return nil
}

var ordinals = [...]string{"first", "second", "third"}

func ordinal(i int) string {
	if i < len(ordinals) {
		return ordinals[i]
	}
	return "argument"
}

// Argument validation helpers. All of them throw a script-level TypeError
// before any callback is registered or work submitted.

func (b *Bridge) requireArity(rt *goja.Runtime, call goja.FunctionCall, op string, want int) {
	if len(call.Arguments) != want {
		panic(rt.NewTypeError("%s.%s requires %d parameters", b.ns, op, want))
	}
}

func (b *Bridge) requireFunction(rt *goja.Runtime, call goja.FunctionCall, op string, idx int) goja.Value {
	v := call.Argument(idx)
	if !values.IsFunction(v) {
		panic(rt.NewTypeError("%s argument to %s.%s must be a function", ordinal(idx), b.ns, op))
	}
	return v
}

func (b *Bridge) requireString(rt *goja.Runtime, call goja.FunctionCall, op string, idx int) string {
	s, err := values.AsString(call.Argument(idx))
	if err != nil {
		panic(rt.NewTypeError("%s argument to %s.%s must be a string", ordinal(idx), b.ns, op))
	}
	return s
}

func (b *Bridge) requireBuffer(rt *goja.Runtime, call goja.FunctionCall, op string, idx int) []byte {
	data, err := values.AsBuffer(call.Argument(idx))
	if err != nil {
		panic(rt.NewTypeError("%s argument to %s.%s must be a string or buffer", ordinal(idx), b.ns, op))
	}
	return data
}

// invoke calls a stored script callback. A throw here has no error channel
// left to deliver to, so it is logged and dropped.
func (b *Bridge) invoke(rt *goja.Runtime, handle goja.Value, id string, args ...goja.Value) {
	fn, ok := goja.AssertFunction(handle)
	if !ok {
		// Dispatchers only store validated functions.
		b.log.Error("stored callback handle is not callable", zap.String("id", id))
		return
	}
	if _, err := fn(goja.Undefined(), args...); err != nil {
		b.log.Error("script callback threw",
			zap.String("id", id),
			zap.String("error", values.ExceptionText(err)))
	}
}
