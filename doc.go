// Package scriptfs bridges JavaScript running in an embedded goja engine to
// an asynchronous native filesystem service.
//
// Script code calls the operations of a namespace object (read, readFromFile,
// write, move, remove, stat) and receives results through callbacks it
// supplies. The native side may complete operations on any goroutine; the
// bridge serializes every re-entry into the engine and guarantees that each
// operation invokes its callback(s) exactly once.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	scriptfs/            Root package with the FileSystem service interface
//	├── engine/          Engine wrapper: execution lock, weak references, teardown
//	├── values/          Conversions between goja values and native types
//	├── callbacks/       Token-keyed storage for in-flight callback groups
//	├── bridge/          Operation dispatchers and completion handlers
//	├── service/         go-billy backed FileSystem implementations
//	├── errors/          Structured error types for debugging
//	└── cmd/run/         CLI for running scripts against a local filesystem
//
// # Quick Start
//
// Install the bridge over an in-memory filesystem and run a script:
//
//	eng := engine.New()
//	defer eng.Close()
//
//	svc := service.NewMemory()
//	defer svc.Close()
//
//	br, err := bridge.New(eng, svc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := br.Install("_fileSystem"); err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = eng.RunScript("app.js", src)
//
// # Thread Safety
//
// The goja runtime is single-threaded with respect to script execution. The
// engine package enforces this: the embedder's RunScript/Do calls and the
// bridge's completion handlers all hold the same execution lock while inside
// the runtime. Completion handlers reach the engine only through a weak
// reference; once Engine.Close has run, they resolve nothing and discard
// their results.
//
// # Lifecycle
//
// Callback handles for in-flight operations live in the engine's callback
// registry, keyed by opaque tokens. A completion handler removes its group
// exactly once; Engine.Close drains whatever is left, so handles are never
// leaked when the engine is torn down mid-operation.
package scriptfs
