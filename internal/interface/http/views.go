package handlers

import (
	"time"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
)

type accountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	GroupID   int       `json:"groupId"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAccountView(a *entity.Account) accountView {
	return accountView{
		ID:        a.ID,
		Email:     a.Email,
		Roles:     entity.RoleStrings(a.Roles),
		Name:      a.Name,
		Phone:     a.Phone,
		GroupID:   a.GroupID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// recordView omits data on summaries.
type recordView struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func toRecordView(r *entity.PersonalRecord) recordView {
	return recordView{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Type:      string(r.RecordType),
		Data:      r.Data,
		CreatedAt: r.CreatedAt,
	}
}

func toRecordViews(rs []entity.PersonalRecord) []recordView {
	out := make([]recordView, len(rs))
	for i := range rs {
		out[i] = toRecordView(&rs[i])
	}
	return out
}

type acknowledgementView struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deleted_count"`
}
