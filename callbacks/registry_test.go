package callbacks

import (
	"strings"
	"sync"
	"testing"

	"github.com/dop251/goja"
)

func handles(rt *goja.Runtime, names ...string) []goja.Value {
	vals := make([]goja.Value, len(names))
	for i, n := range names {
		vals[i] = rt.ToValue(n)
	}
	return vals
}

func TestRegistry_StoreTake(t *testing.T) {
	rt := goja.New()
	reg := NewRegistry()

	tok := reg.Store(handles(rt, "line", "done")...)
	if tok == 0 {
		t.Fatal("expected non-zero token")
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}

	group := reg.Take(tok)
	if len(group) != 2 {
		t.Fatalf("group length = %d, want 2", len(group))
	}
	if group[0].String() != "line" || group[1].String() != "done" {
		t.Errorf("group order not preserved: %v", group)
	}
	if reg.Len() != 0 {
		t.Errorf("Len after Take = %d, want 0", reg.Len())
	}
}

func TestRegistry_TokensUnique(t *testing.T) {
	rt := goja.New()
	reg := NewRegistry()

	seen := make(map[Token]bool)
	for i := 0; i < 100; i++ {
		tok := reg.Store(handles(rt, "cb")...)
		if seen[tok] {
			t.Fatalf("token %d issued twice", tok)
		}
		seen[tok] = true
	}
}

func TestRegistry_TakeUnknownPanics(t *testing.T) {
	reg := NewRegistry()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on unknown token")
		}
		if !strings.Contains(r.(string), "unknown token") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	reg.Take(Token(42))
}

func TestRegistry_DoubleTakePanics(t *testing.T) {
	rt := goja.New()
	reg := NewRegistry()
	tok := reg.Store(handles(rt, "cb")...)
	reg.Take(tok)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Take")
		}
	}()
	reg.Take(tok)
}

func TestRegistry_EmptyStorePanics(t *testing.T) {
	reg := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty Store")
		}
	}()
	reg.Store()
}

func TestRegistry_Drain(t *testing.T) {
	rt := goja.New()
	reg := NewRegistry()
	for i := 0; i < 5; i++ {
		reg.Store(handles(rt, "cb")...)
	}

	if n := reg.Drain(); n != 5 {
		t.Errorf("Drain = %d, want 5", n)
	}
	if reg.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", reg.Len())
	}
	if n := reg.Drain(); n != 0 {
		t.Errorf("second Drain = %d, want 0", n)
	}
}

// Tokens must survive concurrent Store and Take without corruption: each
// token claimed by exactly one Take, every stored group claimed.
func TestRegistry_Concurrent(t *testing.T) {
	rt := goja.New()
	reg := NewRegistry()

	const n = 200
	toks := make(chan Token, n)

	var storers sync.WaitGroup
	for w := 0; w < 4; w++ {
		storers.Add(1)
		go func() {
			defer storers.Done()
			for i := 0; i < n/4; i++ {
				toks <- reg.Store(handles(rt, "cb")...)
			}
		}()
	}

	var takers sync.WaitGroup
	taken := make(chan int, 4)
	for w := 0; w < 4; w++ {
		takers.Add(1)
		go func() {
			defer takers.Done()
			count := 0
			for tok := range toks {
				group := reg.Take(tok)
				if len(group) != 1 {
					t.Errorf("group length = %d, want 1", len(group))
				}
				count++
			}
			taken <- count
		}()
	}

	storers.Wait()
	close(toks)
	takers.Wait()
	close(taken)

	total := 0
	for c := range taken {
		total += c
	}
	if total != n {
		t.Errorf("took %d groups, want %d", total, n)
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d after all takes, want 0", reg.Len())
	}
}
