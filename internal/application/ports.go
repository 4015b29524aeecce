package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
)

// IdentityResolver turns a presented credential into a principal.
// Any failure must be reported as an Unauthenticated apperror.
type IdentityResolver interface {
	ResolvePrincipal(ctx context.Context, credential string) (*entity.Principal, error)
}

// AccountIndexer keeps a searchable projection of accounts. Indexing is best
// effort: failures are logged and never fail the originating write.
type AccountIndexer interface {
	IndexAccount(ctx context.Context, a *entity.Account) error
	SearchAccounts(ctx context.Context, query string, size int) ([]map[string]any, error)
}

// AccountEvents receives notifications after account writes commit.
type AccountEvents interface {
	AccountCreated(ctx context.Context, a *entity.Account) error
	ProfileUpdated(ctx context.Context, a *entity.Account, changed []string) error
}

// AccessObserver records authorization decisions and operation outcomes.
type AccessObserver interface {
	ObserveDecision(operation string, allowed bool)
	ObserveOutcome(operation string, outcome string)
}

// Session is the server-side half of a login. The access token's sid must
// match the stored SessionID.
type Session struct {
	UserID    string
	SessionID string
	Email     string
	CreatedAt time.Time
}

// ErrSessionNotFound is returned by SessionStore.Get when no session exists.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists login sessions, one per user.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}
