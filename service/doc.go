// Package service provides the asynchronous filesystem behind the bridge.
//
// A Service wraps a billy filesystem (local, in-memory, or any other
// implementation) and runs each operation on its own goroutine, delivering
// the result through the completion closure it was handed. It satisfies
// the scriptfs.FileSystem interface.
//
// Completions are invoked exactly once per operation, on a service
// goroutine, never on the submitting goroutine. Close waits for in-flight
// operations; submissions after Close still complete, with an error.
package service
