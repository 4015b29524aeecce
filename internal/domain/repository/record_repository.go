package repository

//go:generate mockgen -source=record_repository.go -destination=mocks/record_repository_mock.go -package=mocks RecordRepository

import (
	"context"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
)

// RecordRepository defines the storage operations for personal records.
// Every read and delete is filtered by owner in the same statement, so a
// record owned by someone else is indistinguishable from a missing one.
type RecordRepository interface {
	// Create returns ErrDuplicate when the owner already holds a record of the same type.
	Create(ctx context.Context, r *entity.PersonalRecord) error
	GetByOwner(ctx context.Context, ownerID, id string) (*entity.PersonalRecord, error)
	ListByOwner(ctx context.Context, ownerID string, includeData bool) ([]entity.PersonalRecord, error)
	// DeleteByOwner returns ErrNotFound when no row matched both id and owner.
	DeleteByOwner(ctx context.Context, ownerID, id string) error
}
