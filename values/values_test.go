package values

import (
	"bytes"
	"testing"

	"github.com/dop251/goja"
)

func TestAsString(t *testing.T) {
	rt := goja.New()

	s, err := AsString(rt.ToValue("hello"))
	if err != nil {
		t.Fatalf("AsString(string): %v", err)
	}
	if s != "hello" {
		t.Errorf("AsString = %q, want %q", s, "hello")
	}

	for name, v := range map[string]goja.Value{
		"number":    rt.ToValue(42),
		"bool":      rt.ToValue(true),
		"undefined": goja.Undefined(),
		"null":      goja.Null(),
		"nil":       nil,
	} {
		if _, err := AsString(v); err == nil {
			t.Errorf("AsString(%s): expected error", name)
		}
	}
}

func TestAsBuffer(t *testing.T) {
	rt := goja.New()

	ab := rt.NewArrayBuffer([]byte{1, 2, 3})
	b, err := AsBuffer(rt.ToValue(ab))
	if err != nil {
		t.Fatalf("AsBuffer(ArrayBuffer): %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("AsBuffer = %v, want [1 2 3]", b)
	}

	b, err = AsBuffer(rt.ToValue("abc"))
	if err != nil {
		t.Fatalf("AsBuffer(string): %v", err)
	}
	if !bytes.Equal(b, []byte("abc")) {
		t.Errorf("AsBuffer = %v, want %v", b, []byte("abc"))
	}

	v, err := rt.RunString(`new Uint8Array([10, 20, 30])`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if b, err := AsBuffer(v); err == nil && !bytes.Equal(b, []byte{10, 20, 30}) {
		t.Errorf("AsBuffer(Uint8Array) = %v, want [10 20 30]", b)
	}

	for name, v := range map[string]goja.Value{
		"number":    rt.ToValue(42),
		"undefined": goja.Undefined(),
		"nil":       nil,
	} {
		if _, err := AsBuffer(v); err == nil {
			t.Errorf("AsBuffer(%s): expected error", name)
		}
	}
}

func TestAsBuffer_NoCopy(t *testing.T) {
	rt := goja.New()
	raw := []byte{9, 9, 9}
	ab := rt.NewArrayBuffer(raw)

	b, err := AsBuffer(rt.ToValue(ab))
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 1
	if b[0] != 1 {
		t.Error("ArrayBuffer bytes were copied, expected shared backing")
	}
}

func TestIsFunction(t *testing.T) {
	rt := goja.New()

	fn, err := rt.RunString(`(function () {})`)
	if err != nil {
		t.Fatal(err)
	}
	if !IsFunction(fn) {
		t.Error("IsFunction(function) = false")
	}

	arrow, err := rt.RunString(`() => 1`)
	if err != nil {
		t.Fatal(err)
	}
	if !IsFunction(arrow) {
		t.Error("IsFunction(arrow) = false")
	}

	for name, v := range map[string]goja.Value{
		"string":    rt.ToValue("f"),
		"object":    rt.NewObject(),
		"undefined": goja.Undefined(),
		"nil":       nil,
	} {
		if IsFunction(v) {
			t.Errorf("IsFunction(%s) = true", name)
		}
	}
}

func TestExceptionText(t *testing.T) {
	rt := goja.New()

	_, err := rt.RunString(`throw new Error("boom")`)
	if err == nil {
		t.Fatal("expected throw")
	}
	if txt := ExceptionText(err); txt != "Error: boom" {
		t.Errorf("ExceptionText = %q, want %q", txt, "Error: boom")
	}

	_, err = rt.RunString(`throw "plain"`)
	if err == nil {
		t.Fatal("expected throw")
	}
	if txt := ExceptionText(err); txt != "plain" {
		t.Errorf("ExceptionText = %q, want %q", txt, "plain")
	}

	if ExceptionText(nil) != "" {
		t.Error("ExceptionText(nil) should be empty")
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "a\nb\nc", []string{"a", "b", "c"}},
		{"empty line collapsed", "a\nb\n\nc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"leading terminators", "\n\r\nfirst", []string{"first"}},
		{"trailing terminators", "last\n\n", []string{"last"}},
		{"no terminator", "only", []string{"only"}},
		{"empty", "", nil},
		{"terminators only", "\r\n\r\n\n", nil},
		{"mixed runs", "\na\r\r\nb\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines([]byte(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("Lines(%q) = %d segments, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if string(got[i]) != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLines_Alias(t *testing.T) {
	buf := []byte("xy\nz")
	lines := Lines(buf)
	buf[0] = 'a'
	if string(lines[0]) != "ay" {
		t.Error("Lines should alias the input buffer, not copy it")
	}
}
