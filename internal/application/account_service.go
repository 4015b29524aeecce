package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	repo "github.com/oksasatya/vendor-vault/internal/domain/repository"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
	"github.com/oksasatya/vendor-vault/pkg/validation"
)

// NewAccountInput is the admin payload for provisioning an account.
type NewAccountInput struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	GroupID  int      `json:"groupId"`
}

// AccountPatch is a self-service profile update. Roles, ID and GroupID are
// kept raw so that their presence, even as null, can be rejected.
type AccountPatch struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Name     *string `json:"name"`

	Roles   json.RawMessage `json:"roles"`
	ID      json.RawMessage `json:"id"`
	GroupID json.RawMessage `json:"groupId"`
}

func (p AccountPatch) restricted() []string {
	var out []string
	if p.Roles != nil {
		out = append(out, "roles")
	}
	if p.ID != nil {
		out = append(out, "id")
	}
	if p.GroupID != nil {
		out = append(out, "groupId")
	}
	return out
}

type AccountService struct {
	Repo       repo.AccountRepository
	Indexer    AccountIndexer
	Events     AccountEvents
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAccountService(r repo.AccountRepository, indexer AccountIndexer, events AccountEvents, logger *logrus.Logger, bcryptCost int) *AccountService {
	return &AccountService{
		Repo:       r,
		Indexer:    indexer,
		Events:     events,
		Logger:     logger,
		BcryptCost: bcryptCost,
	}
}

// CreateAccount validates and persists a new account. Email uniqueness is left
// to the store's unique index; there is no existence check beforehand.
func (s *AccountService) CreateAccount(ctx context.Context, in NewAccountInput) (*entity.Account, error) {
	details := map[string]string{}
	in.Email = strings.TrimSpace(in.Email)
	if msg := validation.Var(in.Email, validation.EmailRules); msg != "" {
		details["email"] = msg
	}
	if msg := validation.Var(in.Password, validation.PasswordRules); msg != "" {
		details["password"] = msg
	}
	if in.Phone != "" {
		if msg := validation.Var(in.Phone, validation.PhoneRules); msg != "" {
			details["phone"] = msg
		}
	}
	if in.Name != "" {
		if msg := validation.Var(in.Name, validation.NameRules); msg != "" {
			details["name"] = msg
		}
	}
	roles, ok := entity.ParseRoles(in.Roles)
	if !ok {
		details["roles"] = "must be a non-empty subset of: " + strings.Join(entity.RoleNames(), ", ")
	}
	if in.GroupID < 0 {
		details["groupId"] = "must be at least 0"
	}
	if len(details) > 0 {
		return nil, apperror.Invalid("invalid account", details)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{
		Email:    in.Email,
		Password: hash,
		Roles:    roles,
		Name:     in.Name,
		Phone:    in.Phone,
		GroupID:  in.GroupID,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.Conflict, "email already registered", err)
		}
		return nil, s.internal("create account failed", err, logrus.Fields{"email": in.Email})
	}

	s.afterWrite(ctx, a, func() error {
		if s.Events == nil {
			return nil
		}
		return s.Events.AccountCreated(ctx, a.Public())
	})
	return a.Public(), nil
}

// GetAccount returns the password-stripped view of the account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Public(), nil
}

// UpdateAccount applies a self-service patch. A patch naming any restricted
// field is rejected whole, whatever else it contains.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, p AccountPatch) (*entity.Account, error) {
	if fields := p.restricted(); len(fields) > 0 {
		details := make(map[string]string, len(fields))
		for _, f := range fields {
			details[f] = "cannot be changed"
		}
		return nil, apperror.Invalid("restricted fields in update", details)
	}

	details := map[string]string{}
	if p.Email != nil {
		trimmed := strings.TrimSpace(*p.Email)
		p.Email = &trimmed
		if msg := validation.Var(trimmed, validation.EmailRules); msg != "" {
			details["email"] = msg
		}
	}
	if p.Password != nil {
		if msg := validation.Var(*p.Password, validation.PasswordRules); msg != "" {
			details["password"] = msg
		}
	}
	if p.Phone != nil {
		if msg := validation.Var(*p.Phone, validation.PhoneRules); msg != "" {
			details["phone"] = msg
		}
	}
	if p.Name != nil {
		if msg := validation.Var(*p.Name, validation.NameRules); msg != "" {
			details["name"] = msg
		}
	}
	if len(details) > 0 {
		return nil, apperror.Invalid("invalid profile update", details)
	}

	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if p.Email != nil {
		a.Email = *p.Email
		changed = append(changed, "email")
	}
	if p.Password != nil {
		hash, hErr := s.hashPassword(*p.Password)
		if hErr != nil {
			return nil, hErr
		}
		a.Password = hash
		changed = append(changed, "password")
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
		changed = append(changed, "phone")
	}
	if p.Name != nil {
		a.Name = *p.Name
		changed = append(changed, "name")
	}
	if len(changed) == 0 {
		return a.Public(), nil
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, apperror.Wrap(apperror.Conflict, "email already registered", err)
		case errors.Is(err, repo.ErrNotFound):
			return nil, apperror.Wrap(apperror.NotFound, "account not found", err)
		}
		return nil, s.internal("update account failed", err, logrus.Fields{"user_id": id})
	}

	s.afterWrite(ctx, a, func() error {
		if s.Events == nil {
			return nil
		}
		return s.Events.ProfileUpdated(ctx, a.Public(), changed)
	})
	return a.Public(), nil
}

func (s *AccountService) hashPassword(plain string) (string, error) {
	hash, err := helpers.HashPasswordCost(plain, s.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.Invalid("invalid account", map[string]string{"password": "must be at most 72 bytes"})
	}
	if err != nil {
		return "", s.internal("hash password failed", err, nil)
	}
	return hash, nil
}

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

// SearchAccounts queries the account index. Without an indexer it returns an
// empty result. A size of 0 means DefaultSearchSize, larger sizes are capped
// at MaxSearchSize, and a negative size is Validation.
func (s *AccountService) SearchAccounts(ctx context.Context, query string, size int) ([]map[string]any, error) {
	query = strings.TrimSpace(query)
	details := map[string]string{}
	if query == "" {
		details["q"] = "is required"
	}
	switch {
	case size < 0:
		details["size"] = "must be a positive integer"
	case size == 0:
		size = DefaultSearchSize
	case size > MaxSearchSize:
		size = MaxSearchSize
	}
	if len(details) > 0 {
		return nil, apperror.Invalid("invalid search", details)
	}
	if s.Indexer == nil {
		return []map[string]any{}, nil
	}
	hits, err := s.Indexer.SearchAccounts(ctx, query, size)
	if err != nil {
		return nil, s.internal("search accounts failed", err, logrus.Fields{"query": query})
	}
	return hits, nil
}

// Authenticate checks email and password. Every failure looks the same to the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil || a == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "lookup account failed", err, logrus.Fields{"email": email})
		}
		return nil, apperror.New(apperror.Unauthenticated, "invalid credentials")
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, apperror.New(apperror.Unauthenticated, "invalid credentials")
	}
	return a.Public(), nil
}

func (s *AccountService) load(ctx context.Context, id string) (*entity.Account, error) {
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return nil, apperror.New(apperror.NotFound, "account not found")
	}
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Wrap(apperror.NotFound, "account not found", err)
		}
		return nil, s.internal("load account failed", err, logrus.Fields{"user_id": id})
	}
	if a == nil {
		return nil, apperror.New(apperror.NotFound, "account not found")
	}
	return a, nil
}

// afterWrite runs the best-effort side effects of a committed write.
func (s *AccountService) afterWrite(ctx context.Context, a *entity.Account, notify func() error) {
	if s.Indexer != nil {
		if err := s.Indexer.IndexAccount(ctx, a.Public()); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", a.ID).Warn("index account failed")
		}
	}
	if err := notify(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", a.ID).Warn("publish account event failed")
	}
}

func (s *AccountService) internal(msg string, err error, fields logrus.Fields) error {
	helpers.LogError(s.Logger, msg, err, fields)
	return apperror.Wrap(apperror.Internal, "internal error", err)
}
