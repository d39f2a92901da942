package bank

import (
	"sort"
	"sync"
)

// DefaultContext backs any unknown context key.
const DefaultContext = "general"

// The registry is written at init() time by content packages and at runtime
// by bank uploads, while every request reads it. All access goes through
// the lock.
type registry struct {
	mu sync.RWMutex
	m  map[string]*Bank
}

var banks = registry{m: map[string]*Bank{}}

// Register associates a context key with a bank. Called from content
// packages' init() and from bank uploads. Re-registering a context
// overwrites.
func Register(ctx string, b *Bank) {
	if ctx == "" || b == nil {
		return
	}
	b.Context = ctx
	b.index()
	banks.mu.Lock()
	banks.m[ctx] = b
	banks.mu.Unlock()
}

// ForContext fetches the bank for a context key. Unknown keys fall back to
// the default bank rather than failing.
func ForContext(key string) *Bank {
	banks.mu.RLock()
	defer banks.mu.RUnlock()
	if b, ok := banks.m[key]; ok {
		return b
	}
	return banks.m[DefaultContext]
}

// Contexts lists registered context keys in sorted order.
func Contexts() []string {
	banks.mu.RLock()
	out := make([]string, 0, len(banks.m))
	for k := range banks.m {
		out = append(out, k)
	}
	banks.mu.RUnlock()
	sort.Strings(out)
	return out
}
