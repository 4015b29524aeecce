package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/pkg/mailer"
	"github.com/oksasatya/vendor-vault/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// AccountNotifier turns account writes into email jobs on the queue.
type AccountNotifier struct {
	pub   Publisher
	brand templates.Brand
	now   func() time.Time
}

func NewAccountNotifier(pub Publisher, brand templates.Brand) *AccountNotifier {
	return &AccountNotifier{pub: pub, brand: brand, now: time.Now}
}

func (n *AccountNotifier) AccountCreated(ctx context.Context, a *entity.Account) error {
	job := mailer.EmailJob{
		To:       a.Email,
		Template: templates.AccountCreated,
		Data:     templates.NewAccountCreatedData(n.brand, a.Name, a.Email, entity.RoleStrings(a.Roles), templates.WithTime(n.now())),
	}
	return n.pub.PublishJSON(ctx, templates.AccountCreated, job)
}

// ProfileUpdated names the changed fields only; new values never leave the service.
func (n *AccountNotifier) ProfileUpdated(ctx context.Context, a *entity.Account, changed []string) error {
	job := mailer.EmailJob{
		To:       a.Email,
		Template: templates.ProfileUpdated,
		Data:     templates.NewProfileUpdatedData(n.brand, a.Name, a.Email, changed, templates.WithTime(n.now())),
	}
	return n.pub.PublishJSON(ctx, templates.ProfileUpdated, job)
}
