package repository

//go:generate mockgen -source=account_repository.go -destination=mocks/account_repository_mock.go -package=mocks AccountRepository

import (
	"context"
	"errors"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
)

// Storage sentinels. Implementations return them (optionally wrapped) so the
// application layer can translate them into error kinds.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// AccountRepository defines the storage operations for accounts.
// Email uniqueness must be enforced by the store itself: Create and Update
// return ErrDuplicate when the unique constraint rejects the write.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
}
