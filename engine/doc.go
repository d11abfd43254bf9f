// Package engine wraps a goja runtime with the serialization and lifetime
// machinery the async bridge needs.
//
// # Execution Context
//
// A goja runtime is single-threaded: only one native caller may execute
// script code at a time. Engine enforces this with one mutex shared by the
// embedder's RunScript/Do calls and the completion handlers' Sessions.
//
// # Weak References
//
// The engine may be closed while native asynchronous work is outstanding.
// Completion handlers therefore never hold the engine strongly; they capture
// a Ref and re-resolve it on every completion:
//
//	sess, ok := ref.Acquire()
//	if !ok {
//	    return // engine gone, discard the result
//	}
//	defer sess.Release()
//	// exclusive use of sess.Runtime()
//
// Acquire after Close fails, so a torn-down engine is never re-entered.
// Close itself drains the callback registry, releasing the handles of
// operations whose completions will never be delivered.
package engine
