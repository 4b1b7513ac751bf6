// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier = (*MockTokenVerifier)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.SessionCodec  = (*MemoryCodec)(nil)
	_ ports.ClaimStore    = (*MemoryClaimStore)(nil)
)

// ErrNotFound is returned by mocks when an entity is not present.
var ErrNotFound = errors.New("not found")

// MockTokenVerifier simulates an identity provider for tests. By default it
// accepts any non-empty token as the configured default identity.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, rawToken string) (domainauth.Identity, error)

	DefaultIdentity domainauth.Identity
}

// NewMockTokenVerifier creates a MockTokenVerifier with a sensible default identity.
func NewMockTokenVerifier() *MockTokenVerifier {
	now := time.Now()
	return &MockTokenVerifier{
		DefaultIdentity: domainauth.Identity{
			Subject:   "mock-user-1",
			Email:     "mock.user@example.com",
			Role:      domainauth.RoleFan,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
		},
	}
}

func (m *MockTokenVerifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawToken)
	}
	if rawToken == "" {
		return domainauth.Identity{}, errors.New("empty token")
	}
	identity := m.DefaultIdentity
	if identity.IssuedAt.IsZero() {
		identity.IssuedAt = time.Now()
	}
	if identity.ExpiresAt.IsZero() {
		identity.ExpiresAt = time.Now().Add(time.Hour)
	}
	return identity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr, when set, is returned by Save.
	SaveErr error
	// GetErr, when set, is returned by Get.
	GetErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryCodec is a transparent session codec for unit tests: artifacts are
// "mock:<session-id>" and parsing looks the session up in the codec itself.
type MemoryCodec struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// IssueErr, when set, is returned by Issue.
	IssueErr error
}

// NewMemoryCodec creates a new in-memory session codec.
func NewMemoryCodec() *MemoryCodec {
	return &MemoryCodec{sessions: make(map[string]domainauth.Session)}
}

func (m *MemoryCodec) Issue(sess domainauth.Session) (string, error) {
	if m.IssueErr != nil {
		return "", m.IssueErr
	}
	if sess.ID == "" {
		return "", errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return "mock:" + sess.ID, nil
}

func (m *MemoryCodec) Parse(artifact string) (domainauth.Session, error) {
	const prefix = "mock:"
	if len(artifact) <= len(prefix) || artifact[:len(prefix)] != prefix {
		return domainauth.Session{}, fmt.Errorf("malformed artifact %q", artifact)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[artifact[len(prefix):]]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		return domainauth.Session{}, errors.New("artifact expired")
	}
	return sess, nil
}

// MemoryClaimStore is an in-memory claim store for unit tests.
type MemoryClaimStore struct {
	mu      sync.Mutex
	records map[string]ports.ClaimRecord

	// GetErr, when set, is returned by GetBySubject.
	GetErr error
}

// NewMemoryClaimStore creates a new in-memory claim store.
func NewMemoryClaimStore() *MemoryClaimStore {
	return &MemoryClaimStore{records: make(map[string]ports.ClaimRecord)}
}

// Put stores a claim record keyed by its subject.
func (m *MemoryClaimStore) Put(record ports.ClaimRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Subject] = record
}

func (m *MemoryClaimStore) GetBySubject(_ context.Context, subject string) (ports.ClaimRecord, error) {
	if m.GetErr != nil {
		return ports.ClaimRecord{}, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[subject]
	if !ok {
		return ports.ClaimRecord{}, fmt.Errorf("%w: %s", ports.ErrClaimsNotFound, subject)
	}
	return record, nil
}
