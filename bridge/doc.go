// Package bridge connects script code to an asynchronous filesystem
// service.
//
// Install attaches a namespace object (default "_fileSystem") to the
// engine's global scope with six operations:
//
//	read(path, cb)                     cb({content, error?})
//	readFromFile(path, lineCb, doneCb) lineCb(line)... doneCb(error?)
//	write(path, buffer, cb)            cb() or cb(error)
//	move(from, to, cb)                 cb() or cb(error)
//	remove(path, cb)                   cb() or cb(error)
//	stat(path, cb)                     cb({exists, lastModified, error?})
//
// Every operation validates its arguments synchronously: wrong arity or a
// non-function where a callback belongs throws a TypeError before any work
// is submitted. The call then returns immediately; results arrive through
// the supplied callbacks, invoked exactly once per operation on the
// engine's execution context regardless of which goroutine the service
// completes on.
//
// Error convention: result-bearing operations (read, stat) attach an error
// field to their result object; fire-and-forget operations (write, move,
// remove, and the completion phase of readFromFile) call back with zero
// arguments on success and one error string on failure.
package bridge
