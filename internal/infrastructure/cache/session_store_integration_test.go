//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/cache"
	"github.com/oksasatya/vendor-vault/pkg/testutil/containers"
)

type SessionStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cache.SessionStore
}

func TestSessionStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = cache.NewSessionStore(s.redis.Client)
}

func (s *SessionStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *SessionStoreSuite) TestSaveGetDelete() {
	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Millisecond)
	s.Require().NoError(s.store.Save(ctx, application.Session{UserID: "u1", SessionID: "sid-1", Email: "v@x.com", CreatedAt: created}, time.Minute))

	got, err := s.store.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("sid-1", got.SessionID)
	s.Equal("v@x.com", got.Email)
	s.True(created.Equal(got.CreatedAt))

	s.Require().NoError(s.store.Delete(ctx, "u1"))
	_, err = s.store.Get(ctx, "u1")
	s.ErrorIs(err, application.ErrSessionNotFound)
}

func (s *SessionStoreSuite) TestSaveReplacesPreviousSession() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, application.Session{UserID: "u2", SessionID: "old"}, time.Minute))
	s.Require().NoError(s.store.Save(ctx, application.Session{UserID: "u2", SessionID: "new"}, time.Minute))

	got, err := s.store.Get(ctx, "u2")
	s.Require().NoError(err)
	s.Equal("new", got.SessionID)

	ttl, err := s.redis.Client.TTL(ctx, "user:session:u2").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}
