package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/vendor-vault/internal/application"
	handlers "github.com/oksasatya/vendor-vault/internal/interface/http"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
)

// AuthModule wires login, refresh and logout.
// Public: POST /api/login, POST /api/refresh
// Protected: POST /api/logout
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Resolver application.IdentityResolver
	Redis    *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, resolver application.IdentityResolver, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndRoute(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndRoute(), nil) // 60 req/min per IP

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/logout", middleware.Auth(m.Resolver), m.Handler.Logout)
}
