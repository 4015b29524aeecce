package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/vendor-vault/internal/application"
	handlers "github.com/oksasatya/vendor-vault/internal/interface/http"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
)

// AdminModule wires account provisioning and search under /api/admin.
// Role checks happen in the access controller, not here.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Resolver application.IdentityResolver
	Redis    *redis.Client
}

func NewAdminModule(h *handlers.AdminHandler, resolver application.IdentityResolver, rdb *redis.Client) *AdminModule {
	return &AdminModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(m.Resolver),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByPrincipal(), nil),
	)
	{
		admin.POST("/users", m.Handler.CreateAccount)
		admin.GET("/users/search", m.Handler.SearchAccounts)
	}
}
