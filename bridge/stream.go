package bridge

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/scriptfs/values"
)

type streamState int

const (
	stateScanning streamState = iota
	stateInvoking
	stateDone
	stateFaulted
)

// streamLines drives the per-line callback over a completed read buffer.
//
// Lines are the terminator-collapsed segments of values.Lines, but the walk
// is inlined here as an explicit state machine so a callback fault can stop
// the stream deterministically: after a throw, the done callback fires once
// with the exception description and no further per-line invocations occur.
// Must run inside the engine's execution context.
func (b *Bridge) streamLines(rt *goja.Runtime, id string, content []byte, lineHandle, doneHandle goja.Value) {
	lineFn, lineOK := goja.AssertFunction(lineHandle)
	doneFn, doneOK := goja.AssertFunction(doneHandle)
	if !lineOK || !doneOK {
		b.log.Error("stored callback handle is not callable", zap.String("id", id))
		return
	}

	finish := func(args ...goja.Value) {
		if _, err := doneFn(goja.Undefined(), args...); err != nil {
			b.log.Error("completion callback threw",
				zap.String("id", id),
				zap.String("error", values.ExceptionText(err)))
		}
	}

	state := stateScanning
	pos := values.SkipLineEnds(content, 0)
	var fault string

	for {
		switch state {
		case stateScanning:
			if pos >= len(content) {
				state = stateDone
				continue
			}
			state = stateInvoking

		case stateInvoking:
			end := values.NextLineEnd(content, pos)
			line := string(content[pos:end])
			if _, err := lineFn(goja.Undefined(), rt.ToValue(line)); err != nil {
				fault = values.ExceptionText(err)
				state = stateFaulted
				continue
			}
			pos = values.SkipLineEnds(content, end)
			state = stateScanning

		case stateDone:
			finish()
			return

		case stateFaulted:
			b.log.Debug("line callback faulted, stream stopped",
				zap.String("id", id), zap.String("error", fault))
			finish(rt.ToValue(fault))
			return
		}
	}
}
