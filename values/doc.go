// Package values converts between goja script values and native Go types at
// the bridge boundary.
//
// All conversions are synchronous and side-effect-free: they never touch the
// filesystem service or the callback registry. Conversion failures are plain
// errors; dispatchers decide how to surface them (typically as script-level
// TypeErrors).
package values
