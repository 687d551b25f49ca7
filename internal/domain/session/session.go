package session

import (
	"encoding/json"
	"errors"
	"sync"

	"hrconsole/internal/domain/directory"
	"hrconsole/internal/platform/storage"
	"hrconsole/internal/upstream"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleSubAdmin   = "subadmin"
	RoleEmployee   = "employee"
)

const identityKey = "session/identity"

var ErrNoSession = errors.New("no active session")

// Identity is the authenticated state the whole console gates on.
type Identity struct {
	Role        string
	Token       string
	Permissions []string
	Access      AccessLevel
	Company     *directory.Company
}

// DependentCaches is the cache surface the session must be able to wipe.
// Logout and company switching are only correct if the dependent caches go
// with them.
type DependentCaches interface {
	Reset()
	InvalidateCompanyScope(companyID string)
}

// Store holds the current identity and mirrors it to durable storage so a
// restart restores the session until an explicit logout.
type Store struct {
	storage storage.Store
	caches  DependentCaches

	mu       sync.RWMutex
	identity *Identity
}

func NewStore(store storage.Store, caches DependentCaches) *Store {
	return &Store{storage: store, caches: caches}
}

type persistedIdentity struct {
	Role                string             `json:"role"`
	Token               string             `json:"token"`
	Permissions         []string           `json:"permissions"`
	SubAdminPermissions []string           `json:"subAdminPermissions"`
	Company             *directory.Company `json:"company,omitempty"`
}

// Restore loads a persisted session. An absent record is not an error; an
// expired or unreadable token wipes the stale record.
func (s *Store) Restore() error {
	raw, err := s.storage.Get(identityKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	var persisted persistedIdentity
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		_ = s.storage.Delete(identityKey)
		return nil
	}
	if _, err := ParseClaims(persisted.Token); err != nil {
		_ = s.storage.Delete(identityKey)
		return nil
	}

	s.mu.Lock()
	s.identity = &Identity{
		Role:        persisted.Role,
		Token:       persisted.Token,
		Permissions: persisted.Permissions,
		Access:      FromNullable(persisted.SubAdminPermissions),
		Company:     persisted.Company,
	}
	s.mu.Unlock()
	return nil
}

// Establish installs the identity granted by a successful login and
// persists it.
func (s *Store) Establish(result upstream.LoginResult) error {
	identity := &Identity{
		Role:   result.Role,
		Token:  result.Token,
		Access: FromNullable(result.SubAdminPermissions),
	}
	if result.Company != nil {
		company := *result.Company
		identity.Company = &company
		identity.Permissions = company.Permissions
	}

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	return s.persist()
}

func (s *Store) persist() error {
	s.mu.RLock()
	identity := s.identity
	s.mu.RUnlock()
	if identity == nil {
		return s.storage.Delete(identityKey)
	}
	persisted := persistedIdentity{
		Role:                identity.Role,
		Token:               identity.Token,
		Permissions:         identity.Permissions,
		SubAdminPermissions: identity.Access.Permissions(),
		Company:             identity.Company,
	}
	encoded, err := json.Marshal(persisted)
	if err != nil {
		return err
	}
	return s.storage.Set(identityKey, string(encoded))
}

// Identity returns a copy of the current identity.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

func (s *Store) ActiveCompany() (*directory.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil || s.identity.Company == nil {
		return nil, false
	}
	company := *s.identity.Company
	return &company, true
}

// SelectCompany switches the active company context. Every cache slice
// scoped to either the previous or the new company is invalidated — stale
// entries are dropped, never merged into the new context.
func (s *Store) SelectCompany(company directory.Company) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrNoSession
	}
	previous := s.identity.Company
	next := company
	s.identity.Company = &next
	s.identity.Permissions = company.Permissions
	s.mu.Unlock()

	if previous != nil && previous.ID != company.ID {
		s.caches.InvalidateCompanyScope(previous.ID)
	}
	s.caches.InvalidateCompanyScope(company.ID)
	return s.persist()
}

// Logout atomically clears the identity, the active company, and every
// dependent cache. Partial logout is a correctness bug, so the identity is
// dropped first and the full storage wipe follows regardless of cache state.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	s.caches.Reset()
	return s.storage.Clear()
}
