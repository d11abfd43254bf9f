package callbacks

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// Token is an opaque key identifying one stored callback group.
// Token 0 is reserved and never issued.
type Token uint64

// Registry stores groups of script callback handles for in-flight
// asynchronous operations. A group is stored once at dispatch time and
// removed exactly once by the completion handler that captured its token.
//
// Store and Take are safe to call from different goroutines: operations are
// submitted on the engine's goroutine and completed on whatever goroutine
// the filesystem service chooses.
type Registry struct {
	groups map[Token][]goja.Value
	next   Token
	mu     sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[Token][]goja.Value),
	}
}

// Store saves an ordered callback group and returns its token.
// Tokens are never reused within the lifetime of a registry, so a stale
// token can never alias a later group.
func (r *Registry) Store(handles ...goja.Value) Token {
	if len(handles) == 0 {
		panic("callbacks: Store requires at least one handle")
	}

	group := make([]goja.Value, len(handles))
	copy(group, handles)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	tok := r.next
	r.groups[tok] = group
	return tok
}

// Take removes and returns the group stored under tok. Ownership of the
// handles transfers to the caller.
//
// Taking an unknown token is a protocol violation, not a user error: every
// token is claimed at most once and only by the completion handler that
// captured it at registration time. Take panics in that case.
func (r *Registry) Take(tok Token) []goja.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[tok]
	if !ok {
		panic(fmt.Sprintf("callbacks: Take of unknown token %d", tok))
	}
	delete(r.groups, tok)
	return group
}

// Len returns the number of stored groups.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups)
}

// Drain removes every stored group and returns how many were dropped.
// Engine teardown calls this so handles for operations that will never
// complete are released rather than leaked.
func (r *Registry) Drain() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.groups)
	clear(r.groups)
	return n
}
