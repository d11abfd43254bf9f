package bridge

import (
	"github.com/dop251/goja"
	"github.com/google/uuid"
	"go.uber.org/zap"

	scriptfs "github.com/wippyai/scriptfs"
	"github.com/wippyai/scriptfs/callbacks"
	"github.com/wippyai/scriptfs/engine"
)

// Each dispatcher validates its fixed arity and argument types, stores the
// callback handle(s) in the engine's registry, and submits the operation to
// the filesystem service. The completion closure captures only the weak
// engine reference and the registry token, never the engine or raw script
// values. Dispatch returns immediately; results arrive via the callbacks.

func (b *Bridge) read(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "read", 2)
		cb := b.requireFunction(rt, call, "read", 1)
		path := b.requireString(rt, call, "read", 0)

		tok := b.eng.Callbacks().Store(cb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "read"), zap.String("id", id), zap.String("path", path))

		b.fs.Read(path, func(content []byte, err error) {
			b.completeRead(ref, tok, id, content, err)
		})
		return goja.Undefined()
	}
}

func (b *Bridge) readFromFile(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "readFromFile", 3)
		lineCb := b.requireFunction(rt, call, "readFromFile", 1)
		doneCb := b.requireFunction(rt, call, "readFromFile", 2)
		path := b.requireString(rt, call, "readFromFile", 0)

		tok := b.eng.Callbacks().Store(lineCb, doneCb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "readFromFile"), zap.String("id", id), zap.String("path", path))

		b.fs.Read(path, func(content []byte, err error) {
			b.completeReadFromFile(ref, tok, id, content, err)
		})
		return goja.Undefined()
	}
}

func (b *Bridge) write(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "write", 3)
		cb := b.requireFunction(rt, call, "write", 2)
		path := b.requireString(rt, call, "write", 0)
		data := b.requireBuffer(rt, call, "write", 1)

		// The script keeps ownership of its buffer and may mutate it while
		// the write is in flight; hand the service a stable copy.
		data = append([]byte(nil), data...)

		tok := b.eng.Callbacks().Store(cb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "write"), zap.String("id", id),
			zap.String("path", path), zap.Int("bytes", len(data)))

		b.fs.Write(path, data, func(err error) {
			b.completeNotify(ref, tok, id, err)
		})
		return goja.Undefined()
	}
}

func (b *Bridge) move(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "move", 3)
		cb := b.requireFunction(rt, call, "move", 2)
		from := b.requireString(rt, call, "move", 0)
		to := b.requireString(rt, call, "move", 1)

		tok := b.eng.Callbacks().Store(cb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "move"), zap.String("id", id),
			zap.String("from", from), zap.String("to", to))

		b.fs.Move(from, to, func(err error) {
			b.completeNotify(ref, tok, id, err)
		})
		return goja.Undefined()
	}
}

func (b *Bridge) remove(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "remove", 2)
		cb := b.requireFunction(rt, call, "remove", 1)
		path := b.requireString(rt, call, "remove", 0)

		tok := b.eng.Callbacks().Store(cb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "remove"), zap.String("id", id), zap.String("path", path))

		b.fs.Remove(path, func(err error) {
			b.completeNotify(ref, tok, id, err)
		})
		return goja.Undefined()
	}
}

func (b *Bridge) stat(rt *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		b.requireArity(rt, call, "stat", 2)
		cb := b.requireFunction(rt, call, "stat", 1)
		path := b.requireString(rt, call, "stat", 0)

		tok := b.eng.Callbacks().Store(cb)
		ref := b.eng.Ref()
		id := uuid.NewString()
		b.log.Debug("dispatch", zap.String("op", "stat"), zap.String("id", id), zap.String("path", path))

		b.fs.Stat(path, func(result scriptfs.StatResult, err error) {
			b.completeStat(ref, tok, id, result, err)
		})
		return goja.Undefined()
	}
}

// Completion handlers. Each runs on whatever goroutine the filesystem
// service invokes it on, re-enters the engine through the weak reference,
// and invokes the stored callbacks exactly once. A failed Acquire means the
// engine was torn down mid-operation: the result is silently discarded and
// the callback group has already been released by engine teardown.

func (b *Bridge) completeRead(ref engine.Ref, tok callbacks.Token, id string, content []byte, opErr error) {
	sess, ok := ref.Acquire()
	if !ok {
		b.log.Debug("completion dropped, engine closed", zap.String("id", id))
		return
	}
	defer sess.Release()

	rt := sess.Runtime()
	group := sess.Callbacks().Take(tok)

	result := rt.NewObject()
	_ = result.Set("content", rt.NewArrayBuffer(content))
	if opErr != nil {
		_ = result.Set("error", opErr.Error())
	}
	b.invoke(rt, group[0], id, result)
}

func (b *Bridge) completeReadFromFile(ref engine.Ref, tok callbacks.Token, id string, content []byte, opErr error) {
	sess, ok := ref.Acquire()
	if !ok {
		b.log.Debug("completion dropped, engine closed", zap.String("id", id))
		return
	}
	defer sess.Release()

	rt := sess.Runtime()
	group := sess.Callbacks().Take(tok)

	if opErr != nil {
		b.invoke(rt, group[1], id, rt.ToValue(opErr.Error()))
		return
	}
	b.streamLines(rt, id, content, group[0], group[1])
}

// completeNotify drives the fire-and-forget shape shared by write, move and
// remove: zero arguments on success, one error string on failure.
func (b *Bridge) completeNotify(ref engine.Ref, tok callbacks.Token, id string, opErr error) {
	sess, ok := ref.Acquire()
	if !ok {
		b.log.Debug("completion dropped, engine closed", zap.String("id", id))
		return
	}
	defer sess.Release()

	rt := sess.Runtime()
	group := sess.Callbacks().Take(tok)

	if opErr != nil {
		b.invoke(rt, group[0], id, rt.ToValue(opErr.Error()))
		return
	}
	b.invoke(rt, group[0], id)
}

func (b *Bridge) completeStat(ref engine.Ref, tok callbacks.Token, id string, res scriptfs.StatResult, opErr error) {
	sess, ok := ref.Acquire()
	if !ok {
		b.log.Debug("completion dropped, engine closed", zap.String("id", id))
		return
	}
	defer sess.Release()

	rt := sess.Runtime()
	group := sess.Callbacks().Take(tok)

	var lastModified int64
	if !res.LastModified.IsZero() {
		lastModified = res.LastModified.UnixMilli()
	}

	result := rt.NewObject()
	_ = result.Set("exists", res.Exists)
	_ = result.Set("lastModified", lastModified)
	if opErr != nil {
		_ = result.Set("error", opErr.Error())
	}
	b.invoke(rt, group[0], id, result)
}
