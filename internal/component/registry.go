// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name>.  Boot code
// constructs them with the shared DB pool, registers them here, lets
// each one attach its Routes() to the shared router, and applies its
// Migrations() before the server starts listening.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Migrations() may return nil if the component has no schema.
// Routes(r) registers BOTH public and admin endpoints on the shared
// router, e.g:
//
//	r.Post("/api/questions", c.handleIntake)
//	r.Route("/api/admin/questions", func(ar chi.Router) { ... })
type Component interface {
	Name() string
	Routes(r chi.Router)
	Migrations() []string
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name, so migration
// order and route mounting are deterministic across restarts.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Migrations collects every component's DDL in mount order.
func Migrations() []string {
	var stmts []string
	for _, c := range All() {
		stmts = append(stmts, c.Migrations()...)
	}
	return stmts
}
