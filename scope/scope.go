// Package scope implements the Language's scope chain (spec §4.4): a
// mapping from name to value.Value with a single enclosing-scope
// fallback, grounded on the structure of minigo2's Environment
// (podhmo-go-scan/minigo2/object/object.go) but adapted to this
// language's define/set split and its dynamically-scoped function
// calls (spec §4.4's open question).
package scope

import (
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/value"
)

// Scope owns its own bindings and a back-link to the scope it was
// pushed from. The back-link is an ordinary pointer: Go's collector
// reclaims scope cycles on its own, so the "weak reference" the spec
// describes needs no special representation here.
type Scope struct {
	vars      map[string]value.Value
	enclosing *Scope
}

// New creates a root scope with no enclosing scope.
func New() *Scope {
	return &Scope{vars: make(map[string]value.Value)}
}

// Push creates a child scope of s. Function calls pass the caller's
// scope here (not the defining function's closure scope), which is
// what gives the Language dynamic scoping.
func (s *Scope) Push() *Scope {
	return &Scope{vars: make(map[string]value.Value), enclosing: s}
}

// Has reports whether name is bound directly in s.
func (s *Scope) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// HasRecursive reports whether name is bound in s or any enclosing scope.
func (s *Scope) HasRecursive(name string) bool {
	for cur := s; cur != nil; cur = cur.enclosing {
		if cur.Has(name) {
			return true
		}
	}
	return false
}

// Get resolves name to its nearest binding, walking the enclosing
// chain outward.
func (s *Scope) Get(name string) (value.Value, error) {
	for cur := s; cur != nil; cur = cur.enclosing {
		if v, ok := cur.vars[name]; ok {
			return v, nil
		}
	}
	return value.Value{}, diag.Errorf("Undefined variable '%s'", name)
}

// Define inserts name into s's own map. A Define on a name already
// present in s is a no-op, matching the reference's shadow-only-via-
// nested-scope rule.
func (s *Scope) Define(name string, v value.Value) {
	if _, ok := s.vars[name]; ok {
		return
	}
	s.vars[name] = v
}

// Set mutates the nearest enclosing scope (including s) that defines
// name, applying the value.Assign contract in place. It errors if no
// scope in the chain defines name.
func (s *Scope) Set(name string, v value.Value) error {
	for cur := s; cur != nil; cur = cur.enclosing {
		if existing, ok := cur.vars[name]; ok {
			if err := existing.Assign(v); err != nil {
				return err
			}
			cur.vars[name] = existing
			return nil
		}
	}
	return diag.Errorf("Undefined variable '%s'", name)
}

// Root walks to the outermost scope in the chain. The module loader
// defines loaded functions there.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.enclosing != nil {
		cur = cur.enclosing
	}
	return cur
}
