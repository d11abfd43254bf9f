package values

import (
	stderrors "errors"
	"reflect"

	"github.com/dop251/goja"

	"github.com/wippyai/scriptfs/errors"
)

// AsString converts a script value to a Go string.
// Only string-like values are accepted; anything else is a type mismatch
// that dispatchers surface as a script-level TypeError.
func AsString(v goja.Value) (string, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", errors.TypeMismatch("string", nil)
	}
	if t := v.ExportType(); t != nil && t.Kind() == reflect.String {
		return v.String(), nil
	}
	return "", errors.TypeMismatch("string", v.Export())
}

// AsBuffer converts a script value to a native byte slice.
// Accepted forms: ArrayBuffer, typed-array views (exported as byte slices),
// and plain strings (UTF-8 bytes). ArrayBuffer content is shared, not
// copied.
func AsBuffer(v goja.Value) ([]byte, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, errors.TypeMismatch("buffer", nil)
	}
	switch data := v.Export().(type) {
	case goja.ArrayBuffer:
		return data.Bytes(), nil
	case []byte:
		return data, nil
	case string:
		return []byte(data), nil
	}
	return nil, errors.TypeMismatch("buffer", v.Export())
}

// IsFunction reports whether a script value is callable. It never throws.
func IsFunction(v goja.Value) bool {
	if v == nil {
		return false
	}
	_, ok := goja.AssertFunction(v)
	return ok
}

// ExceptionText returns the description of a script exception captured from
// a callback invocation. Non-exception errors fall back to their Error()
// text.
func ExceptionText(err error) string {
	if err == nil {
		return ""
	}
	var ex *goja.Exception
	if stderrors.As(err, &ex) {
		return ex.Value().String()
	}
	return err.Error()
}
