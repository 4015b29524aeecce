package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResponse struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
}

// AuthService issues credentials and resolves them back into principals.
// Each user holds at most one session; its id is embedded in every token.
type AuthService struct {
	Accounts   *AccountService
	JWT        *helpers.JWTManager
	Sessions   SessionStore
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAuthService(accounts *AccountService, jwt *helpers.JWTManager, sessions SessionStore, sessionTTL time.Duration, logger *logrus.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		Accounts:   accounts,
		JWT:        jwt,
		Sessions:   sessions,
		SessionTTL: sessionTTL,
		Logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	a, err := s.Accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: a.ID, Email: a.Email, Name: a.Name, Roles: entity.RoleStrings(a.Roles)}
	return resp, pair, nil
}

// IssueTokens starts a new session for a, replacing any previous one.
func (s *AuthService) IssueTokens(ctx context.Context, a *entity.Account) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(a, sid)
	if err != nil {
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		sess := Session{UserID: a.ID, SessionID: sid, Email: a.Email, CreatedAt: time.Now().UTC()}
		if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
			helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"user_id": a.ID})
			return TokenPair{}, apperror.Wrap(apperror.Internal, "internal error", err)
		}
	}
	return pair, nil
}

// Refresh rotates the session id and both tokens. Roles are re-read from the
// account so a role change takes effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperror.Wrap(apperror.Unauthenticated, "invalid refresh token", ErrInvalidCredentials)
	}
	if err := s.checkSession(ctx, claims.UserID, claims.SessionID); err != nil {
		return TokenPair{}, "", err
	}
	a, err := s.Accounts.GetAccount(ctx, claims.UserID)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return TokenPair{}, "", apperror.Wrap(apperror.Unauthenticated, "invalid refresh token", ErrInvalidCredentials)
		}
		return TokenPair{}, "", err
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, a.ID, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Sessions == nil || userID == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		helpers.LogError(s.Logger, "delete session failed", err, logrus.Fields{"user_id": userID})
		return apperror.Wrap(apperror.Internal, "internal error", err)
	}
	return nil
}

// ResolvePrincipal accepts an access token bound to the user's live session.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, apperror.New(apperror.Unauthenticated, "missing credentials")
	}
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.Unauthenticated, "invalid or expired token", err)
	}
	roles, ok := entity.ParseRoles(claims.Roles)
	if !ok {
		return nil, apperror.New(apperror.Unauthenticated, "invalid or expired token")
	}
	if err := s.checkSession(ctx, claims.UserID, claims.SessionID); err != nil {
		return nil, err
	}
	return &entity.Principal{ID: claims.UserID, Roles: roles}, nil
}

func (s *AuthService) checkSession(ctx context.Context, userID, sid string) error {
	if s.Sessions == nil {
		return nil
	}
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			helpers.LogError(s.Logger, "load session failed", err, logrus.Fields{"user_id": userID})
		}
		return apperror.Wrap(apperror.Unauthenticated, "session expired", err)
	}
	if sess == nil || sess.SessionID != sid {
		return apperror.New(apperror.Unauthenticated, "session expired")
	}
	return nil
}

func (s *AuthService) sign(a *entity.Account, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid, entity.RoleStrings(a.Roles))
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": a.ID})
		return TokenPair{}, apperror.Wrap(apperror.Internal, "internal error", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"user_id": a.ID})
		return TokenPair{}, apperror.Wrap(apperror.Internal, "internal error", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
