package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/domain/repository"
)

type RecordRepository struct {
	db DBTX
}

func NewRecordRepository(db DBTX) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create relies on UNIQUE (owner_id, record_type).
func (r *RecordRepository) Create(ctx context.Context, rec *entity.PersonalRecord) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO personal_records (owner_id, record_type, data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rec.OwnerID, string(rec.RecordType), rec.Data)

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert record: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) GetByOwner(ctx context.Context, ownerID, id string) (*entity.PersonalRecord, error) {
	rec := &entity.PersonalRecord{}
	var rt string
	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, record_type, data, created_at
		FROM personal_records
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if err := row.Scan(&rec.ID, &rec.OwnerID, &rt, &rec.Data, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	rec.RecordType = entity.RecordType(rt)
	return rec, nil
}

func (r *RecordRepository) ListByOwner(ctx context.Context, ownerID string, includeData bool) ([]entity.PersonalRecord, error) {
	query := `SELECT id, owner_id, record_type, NULL::jsonb, created_at FROM personal_records WHERE owner_id = $1 ORDER BY created_at, id`
	if includeData {
		query = `SELECT id, owner_id, record_type, data, created_at FROM personal_records WHERE owner_id = $1 ORDER BY created_at, id`
	}
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := []entity.PersonalRecord{}
	for rows.Next() {
		var rec entity.PersonalRecord
		var rt string
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rt, &rec.Data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.RecordType = entity.RecordType(rt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// DeleteByOwner deletes only when both id and owner match; the returned row
// proves the match.
func (r *RecordRepository) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	var deleted string
	err := r.db.QueryRow(ctx, `
		DELETE FROM personal_records
		WHERE id = $1 AND owner_id = $2
		RETURNING id
	`, id, ownerID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("delete record: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

var _ repository.RecordRepository = (*RecordRepository)(nil)
