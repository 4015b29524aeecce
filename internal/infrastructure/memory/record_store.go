package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/domain/repository"
)

type ownerType struct {
	owner string
	typ   entity.RecordType
}

type RecordStore struct {
	mu     sync.Mutex
	byID   map[string]entity.PersonalRecord
	byType map[ownerType]string
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		byID:   map[string]entity.PersonalRecord{},
		byType: map[ownerType]string{},
	}
}

func (s *RecordStore) Create(_ context.Context, r *entity.PersonalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ownerType{owner: r.OwnerID, typ: r.RecordType}
	if _, taken := s.byType[key]; taken {
		return repository.ErrDuplicate
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	s.byID[r.ID] = cloneRecord(*r, true)
	s.byType[key] = r.ID
	return nil
}

func (s *RecordStore) GetByOwner(_ context.Context, ownerID, id string) (*entity.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok || r.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := cloneRecord(r, true)
	return &out, nil
}

func (s *RecordStore) ListByOwner(_ context.Context, ownerID string, includeData bool) ([]entity.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.PersonalRecord{}
	for _, r := range s.byID {
		if r.OwnerID == ownerID {
			out = append(out, cloneRecord(r, includeData))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RecordStore) DeleteByOwner(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok || r.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byType, ownerType{owner: r.OwnerID, typ: r.RecordType})
	return nil
}

func cloneRecord(r entity.PersonalRecord, withData bool) entity.PersonalRecord {
	if !withData {
		r.Data = nil
		return r
	}
	data := make(map[string]string, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}
	r.Data = data
	return r
}
