package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	repo "github.com/oksasatya/vendor-vault/internal/domain/repository"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
)

// NewRecordInput is the upload payload. Type is checked against the
// configured vocabulary. recordType and dataObject are accepted as long-form
// names for type and data; a body may use one spelling per field.
type NewRecordInput struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`

	RecordType string            `json:"recordType,omitempty"`
	DataObject map[string]string `json:"dataObject,omitempty"`
}

func (in *NewRecordInput) normalize(details map[string]string) {
	if in.RecordType != "" {
		if in.Type != "" {
			details["recordType"] = "use either type or recordType"
		}
		in.Type = in.RecordType
	}
	if in.DataObject != nil {
		if in.Data != nil {
			details["dataObject"] = "use either data or dataObject"
		}
		in.Data = in.DataObject
	}
}

// RecordService stores typed records scoped to their owner. Callers pass the
// owner explicitly; it is never read from a payload.
type RecordService struct {
	Repo   repo.RecordRepository
	Types  entity.RecordTypes
	Logger *logrus.Logger
}

func NewRecordService(r repo.RecordRepository, types entity.RecordTypes, logger *logrus.Logger) *RecordService {
	return &RecordService{Repo: r, Types: types, Logger: logger}
}

func (s *RecordService) CreateRecord(ctx context.Context, ownerID string, in NewRecordInput) (*entity.PersonalRecord, error) {
	details := map[string]string{}
	in.normalize(details)
	rt, ok := s.Types.Parse(in.Type)
	if !ok {
		details["type"] = "must be one of: " + strings.Join(s.Types.Names(), ", ")
	}
	if len(in.Data) == 0 {
		details["data"] = "is required"
	}
	for k, v := range in.Data {
		if strings.TrimSpace(k) == "" {
			details["data"] = "keys must not be blank"
			break
		}
		if strings.TrimSpace(v) == "" {
			details["data."+k] = "must not be blank"
		}
	}
	if len(details) > 0 {
		return nil, apperror.Invalid("invalid record", details)
	}

	data := make(map[string]string, len(in.Data))
	for k, v := range in.Data {
		data[k] = v
	}
	r := &entity.PersonalRecord{OwnerID: ownerID, RecordType: rt, Data: data}
	if err := s.Repo.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.Conflict, "record type already exists for owner", err)
		}
		return nil, s.internal("create record failed", err, logrus.Fields{"owner_id": ownerID, "record_type": in.Type})
	}
	return r, nil
}

// GetRecord returns the record only when ownerID owns it. A foreign record
// and a missing one produce the same NotFound.
func (s *RecordService) GetRecord(ctx context.Context, ownerID, recordID string) (*entity.PersonalRecord, error) {
	if err := checkRecordID(recordID); err != nil {
		return nil, err
	}
	r, err := s.Repo.GetByOwner(ctx, ownerID, recordID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Wrap(apperror.NotFound, "record not found", err)
		}
		return nil, s.internal("get record failed", err, logrus.Fields{"owner_id": ownerID, "record_id": recordID})
	}
	if r == nil {
		return nil, apperror.New(apperror.NotFound, "record not found")
	}
	return r, nil
}

// ListRecords returns the owner's records; summaries carry no data.
func (s *RecordService) ListRecords(ctx context.Context, ownerID string, includeData bool) ([]entity.PersonalRecord, error) {
	out, err := s.Repo.ListByOwner(ctx, ownerID, includeData)
	if err != nil {
		return nil, s.internal("list records failed", err, logrus.Fields{"owner_id": ownerID})
	}
	if out == nil {
		out = []entity.PersonalRecord{}
	}
	return out, nil
}

func (s *RecordService) DeleteRecord(ctx context.Context, ownerID, recordID string) (entity.Acknowledgement, error) {
	if err := checkRecordID(recordID); err != nil {
		return entity.Acknowledgement{}, err
	}
	if err := s.Repo.DeleteByOwner(ctx, ownerID, recordID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.Acknowledgement{}, apperror.Wrap(apperror.NotFound, "record not found", err)
		}
		return entity.Acknowledgement{}, s.internal("delete record failed", err, logrus.Fields{"owner_id": ownerID, "record_id": recordID})
	}
	return entity.Acknowledgement{Acknowledged: true, DeletedCount: 1}, nil
}

// checkRecordID accepts only the canonical 36-character form; uuid.Parse
// also takes urn:uuid: and braced forms that PostgreSQL rejects.
func checkRecordID(id string) error {
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return apperror.Invalid("invalid record id", map[string]string{"id": "must be a valid UUID"})
	}
	return nil
}

func (s *RecordService) internal(msg string, err error, fields logrus.Fields) error {
	helpers.LogError(s.Logger, msg, err, fields)
	return apperror.Wrap(apperror.Internal, "internal error", err)
}
