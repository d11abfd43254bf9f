package scriptfs

import "time"

// StatResult describes a filesystem path as reported by a FileSystem service.
// A path that does not exist is reported with Exists=false and a nil error;
// the error channel is reserved for genuine I/O failures.
type StatResult struct {
	Exists       bool
	LastModified time.Time
}

// FileSystem is the native filesystem service consumed by the bridge.
//
// Every operation is asynchronous: the call returns immediately and the
// completion callback is invoked exactly once, possibly on a different
// goroutine than the caller's. Implementations decide scheduling and
// timeout policy; the bridge imposes neither.
type FileSystem interface {
	// Read fetches the full content of the file at path.
	Read(path string, complete func(content []byte, err error))

	// Write replaces the file at path with data, creating it (and any
	// missing parent directories) as needed.
	Write(path string, data []byte, complete func(err error))

	// Move renames from to to.
	Move(from, to string, complete func(err error))

	// Remove deletes the file at path.
	Remove(path string, complete func(err error))

	// Stat reports existence and modification time of path.
	Stat(path string, complete func(result StatResult, err error))
}
