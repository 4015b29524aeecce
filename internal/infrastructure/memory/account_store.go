// Package memory holds mutex-guarded stores with the same uniqueness and
// ownership guarantees as the PostgreSQL repositories. They back tests and
// local runs without a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/domain/repository"
)

type AccountStore struct {
	mu      sync.Mutex
	byID    map[string]entity.Account
	byEmail map[string]string
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    map[string]entity.Account{},
		byEmail: map[string]string{},
	}
}

func emailKey(email string) string { return strings.ToLower(email) }

func (s *AccountStore) Create(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := emailKey(a.Email)
	if _, taken := s.byEmail[key]; taken {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now
	s.byID[a.ID] = cloneAccount(*a)
	s.byEmail[key] = a.ID
	return nil
}

func (s *AccountStore) GetByID(_ context.Context, id string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneAccount(a)
	return &out, nil
}

func (s *AccountStore) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneAccount(s.byID[id])
	return &out, nil
}

func (s *AccountStore) Update(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.byID[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	oldKey, newKey := emailKey(prev.Email), emailKey(a.Email)
	if oldKey != newKey {
		if _, taken := s.byEmail[newKey]; taken {
			return repository.ErrDuplicate
		}
		delete(s.byEmail, oldKey)
		s.byEmail[newKey] = a.ID
	}
	a.CreatedAt = prev.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.byID[a.ID] = cloneAccount(*a)
	return nil
}

func cloneAccount(a entity.Account) entity.Account {
	a.Roles = append([]entity.Role(nil), a.Roles...)
	return a
}
