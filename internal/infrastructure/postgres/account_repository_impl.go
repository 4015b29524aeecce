package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/domain/repository"
)

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, password_hash, roles, name, phone, group_id, created_at, updated_at`

// Create relies on the unique index over lower(email); a concurrent duplicate
// surfaces as ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, roles, name, phone, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Password, entity.RoleStrings(a.Roles), a.Name, a.Phone, a.GroupID)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert account: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`, email)
	return scanAccount(row)
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts
		SET email = $1, password_hash = $2, name = $3, phone = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, a.Email, a.Password, a.Name, a.Phone, a.ID)

	if err := row.Scan(&a.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("update account: %w", repository.ErrNotFound)
		case isUniqueViolation(err):
			return fmt.Errorf("update account: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	var roles []string
	if err := row.Scan(&a.ID, &a.Email, &a.Password, &roles, &a.Name, &a.Phone, &a.GroupID,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	parsed, ok := entity.ParseRoles(roles)
	if !ok {
		return nil, fmt.Errorf("scan account %s: unknown roles %v", a.ID, roles)
	}
	a.Roles = parsed
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
