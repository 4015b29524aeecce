package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/domain/repository"
	"github.com/oksasatya/vendor-vault/internal/domain/repository/mocks"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
)

const recordID = "0b9e7a52-1f4d-4b7e-9a61-3c2d1e0f9a8b"

func testRecordTypes(t *testing.T) entity.RecordTypes {
	t.Helper()
	types, err := entity.NewRecordTypes("test01", "test02", "test03")
	require.NoError(t, err)
	return types
}

func newRecordService(t *testing.T) (*application.RecordService, *mocks.MockRecordRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRecordRepository(ctrl)
	return application.NewRecordService(repo, testRecordTypes(t), helpers.NewDiscardLogger()), repo
}

func TestCreateRecord(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *entity.PersonalRecord) error {
		assert.Equal(t, vendorID, r.OwnerID)
		assert.Equal(t, entity.RecordType("test01"), r.RecordType)
		r.ID = recordID
		return nil
	})

	r, err := svc.CreateRecord(context.Background(), vendorID, application.NewRecordInput{Type: "test01", Data: map[string]string{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, recordID, r.ID)
	assert.Equal(t, map[string]string{"k": "v"}, r.Data)
}

func TestCreateRecordValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    application.NewRecordInput
		field string
	}{
		{"type outside vocabulary", application.NewRecordInput{Type: "test99", Data: map[string]string{"k": "v"}}, "type"},
		{"missing data", application.NewRecordInput{Type: "test01"}, "data"},
		{"blank value", application.NewRecordInput{Type: "test01", Data: map[string]string{"k": " "}}, "data.k"},
		{"blank key", application.NewRecordInput{Type: "test01", Data: map[string]string{"": "v"}}, "data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newRecordService(t)
			_, err := svc.CreateRecord(context.Background(), vendorID, tt.in)
			require.True(t, apperror.Is(err, apperror.Validation), "got %v", err)

			var ae *apperror.Error
			require.ErrorAs(t, err, &ae)
			assert.Contains(t, ae.Details, tt.field)
		})
	}
}

func TestCreateRecordLongFormFieldNames(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	var in application.NewRecordInput
	require.NoError(t, application.JSONPayload(strings.NewReader(`{"recordType":"test02","dataObject":{"k":"v"}}`)).Decode(&in))
	r, err := svc.CreateRecord(context.Background(), vendorID, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RecordType("test02"), r.RecordType)
	assert.Equal(t, map[string]string{"k": "v"}, r.Data)
}

func TestCreateRecordBothSpellingsIsValidation(t *testing.T) {
	svc, _ := newRecordService(t)
	_, err := svc.CreateRecord(context.Background(), vendorID, application.NewRecordInput{
		Type:       "test01",
		RecordType: "test02",
		Data:       map[string]string{"k": "v"},
		DataObject: map[string]string{"k": "w"},
	})
	require.True(t, apperror.Is(err, apperror.Validation), "got %v", err)

	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Details, "recordType")
	assert.Contains(t, ae.Details, "dataObject")
}

func TestCreateRecordDuplicateTypeIsConflict(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)

	_, err := svc.CreateRecord(context.Background(), vendorID, application.NewRecordInput{Type: "test01", Data: map[string]string{"k": "v"}})
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestGetRecordRejectsMalformedIDBeforeStorage(t *testing.T) {
	svc, _ := newRecordService(t)
	malformed := []string{
		"", "123", "not-a-uuid", recordID + "0",
		"urn:uuid:" + recordID,
		"{" + recordID + "}",
		strings.ReplaceAll(recordID, "-", ""),
	}
	for _, id := range malformed {
		_, err := svc.GetRecord(context.Background(), vendorID, id)
		assert.True(t, apperror.Is(err, apperror.Validation), "id %q: got %v", id, err)

		_, err = svc.DeleteRecord(context.Background(), vendorID, id)
		assert.True(t, apperror.Is(err, apperror.Validation), "id %q: got %v", id, err)
	}
}

func TestGetRecordForeignOrMissingIsNotFound(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().GetByOwner(gomock.Any(), vendorID, recordID).Return(nil, repository.ErrNotFound)

	_, err := svc.GetRecord(context.Background(), vendorID, recordID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestGetRecordStorageFault(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().GetByOwner(gomock.Any(), vendorID, recordID).Return(nil, errors.New("timeout"))

	_, err := svc.GetRecord(context.Background(), vendorID, recordID)
	assert.Equal(t, apperror.Internal, apperror.KindOf(err))
}

func TestListRecordsNeverNil(t *testing.T) {
	svc, repo := newRecordService(t)
	repo.EXPECT().ListByOwner(gomock.Any(), vendorID, false).Return(nil, nil)

	out, err := svc.ListRecords(context.Background(), vendorID, false)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDeleteRecord(t *testing.T) {
	svc, repo := newRecordService(t)
	gomock.InOrder(
		repo.EXPECT().DeleteByOwner(gomock.Any(), vendorID, recordID).Return(nil),
		repo.EXPECT().DeleteByOwner(gomock.Any(), vendorID, recordID).Return(repository.ErrNotFound),
	)

	ack, err := svc.DeleteRecord(context.Background(), vendorID, recordID)
	require.NoError(t, err)
	assert.Equal(t, entity.Acknowledgement{Acknowledged: true, DeletedCount: 1}, ack)

	_, err = svc.DeleteRecord(context.Background(), vendorID, recordID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}
