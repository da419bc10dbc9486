package rask

import (
	"sync"

	"github.com/kildevaeld/rask/matcher"
)

// entry is one immutable method/rule/handler binding. Entries
// registered by the same call share a group id, the unit the skip
// signal operates on.
type entry struct {
	group   int
	method  string
	rule    *matcher.Rule
	handler handler
}

// Registry is the ordered, append-only route table. It is written
// during configuration and read concurrently while serving; appends
// happen under the lock and readers walk a snapshot, so an in-flight
// request sees either the pre- or post-append list, never a torn one.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	groups  int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Route appends one entry per handler for a method-specific path. All
// entries of the call share a fresh group. An empty method matches
// any method.
func (r *Registry) Route(method, path string, handlers ...interface{}) error {
	hs, err := toHandlers(handlers)
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		return nil
	}

	r.append(method, matcher.Compile(path), hs)
	return nil
}

// Use appends method-agnostic entries matched on every path. This is
// the mount surface: handlers registered here run for each request in
// registration order, ahead of anything registered after them.
func (r *Registry) Use(handlers ...interface{}) error {
	hs, err := toHandlers(handlers)
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		return nil
	}

	r.append("", matcher.Root(), hs)
	return nil
}

func (r *Registry) append(method string, rule *matcher.Rule, hs []handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups++
	group := r.groups
	for _, h := range hs {
		r.entries = append(r.entries, entry{
			group:   group,
			method:  method,
			rule:    rule,
			handler: h,
		})
	}
}

// Len reports the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) snapshot() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries
}
