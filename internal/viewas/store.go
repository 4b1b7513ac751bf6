// Package viewas tracks per-scope role overrides used by administrators to
// preview the application as a lower-privilege role. Overrides live only in
// memory; they are never written to the session artifact or any store, so a
// process restart clears every active preview.
package viewas

import (
	"fmt"
	"sync"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// Store holds the active overrides keyed by scope (one scope per admin
// session) and notifies subscribers when a scope's override changes.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]domainauth.Role
	subs      map[string]map[int]func(domainauth.Role)
	nextSubID int
}

// NewStore returns an empty override store.
func NewStore() *Store {
	return &Store{
		overrides: make(map[string]domainauth.Role),
		subs:      make(map[string]map[int]func(domainauth.Role)),
	}
}

// Set records the override for scope. The empty role clears the override,
// so a full set/clear cycle leaves no residue in the map. Roles outside the
// allowed override set are rejected before any state changes.
func (s *Store) Set(scope string, override domainauth.Role) error {
	if scope == "" {
		return fmt.Errorf("viewas: scope is required")
	}
	if !domainauth.OverrideAllowed(override) {
		return fmt.Errorf("viewas: role %q cannot be used as an override", override)
	}

	s.mu.Lock()
	prev, had := s.overrides[scope]
	if override == "" {
		delete(s.overrides, scope)
	} else {
		s.overrides[scope] = override
	}
	var notify []func(domainauth.Role)
	if had != (override != "") || prev != override {
		for _, fn := range s.subs[scope] {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(override)
	}
	return nil
}

// Get returns the override for scope, or the empty role when none is set.
func (s *Store) Get(scope string) domainauth.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides[scope]
}

// Clear removes the override for scope. Clearing an absent scope is a no-op
// and does not notify subscribers.
func (s *Store) Clear(scope string) {
	s.mu.Lock()
	_, had := s.overrides[scope]
	delete(s.overrides, scope)
	var notify []func(domainauth.Role)
	if had {
		for _, fn := range s.subs[scope] {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn("")
	}
}

// Subscribe registers fn to run whenever the override for scope changes.
// The returned func removes the subscription; calling it more than once is
// safe. Callbacks run outside the store lock, so a callback may call back
// into the store.
func (s *Store) Subscribe(scope string, fn func(domainauth.Role)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	if s.subs[scope] == nil {
		s.subs[scope] = make(map[int]func(domainauth.Role))
	}
	s.subs[scope][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs[scope], id)
			if len(s.subs[scope]) == 0 {
				delete(s.subs, scope)
			}
		})
	}
}
