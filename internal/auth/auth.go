package auth

import (
	model "auction-service/internal/models"
)

// CredentialStore validates a submitted credential pair. The session handler
// depends only on this interface so the static table can be swapped for a
// real backend without touching session logic.
type CredentialStore interface {
	Authenticate(username, password string) bool
}

// StaticStore is a read-only in-memory CredentialStore loaded once at startup
type StaticStore struct {
	users map[string]string // key: username -> value: password
}

// NewStaticStore builds a StaticStore from the configured user records.
// Records with an empty username or password are skipped: they could never
// authenticate anyway.
func NewStaticStore(users []model.User) *StaticStore {
	s := &StaticStore{
		users: make(map[string]string, len(users)),
	}
	for _, u := range users {
		if u.Username == "" || u.Password == "" {
			continue
		}
		s.users[u.Username] = u.Password
	}
	return s
}

// Authenticate performs an exact-string comparison against the static table.
// Plaintext equality by requirement; credential hardening is out of scope.
func (s *StaticStore) Authenticate(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	stored, ok := s.users[username]
	return ok && stored == password
}
