// Package callbacks stores script callback handles for in-flight
// asynchronous operations.
//
// A dispatcher stores the callback(s) of one logical operation as an ordered
// group and gets back an opaque Token. The completion handler that captured
// the token retrieves the group, removing it in the same step, when the native
// operation finishes:
//
//	tok := reg.Store(resultCb)
//	// ... async work ...
//	handles := reg.Take(tok) // exactly once
//
// Removal on retrieval is what bounds memory to in-flight operations and
// makes double invocation structurally impossible: after Take the token is
// dead, and a second Take panics.
//
// The registry is the only shared mutable state crossing the boundary
// between the engine's goroutine and the filesystem service's completion
// goroutines; Store and Take are safe to call concurrently.
package callbacks
