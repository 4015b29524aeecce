package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/vendor-vault/internal/application"
	handlers "github.com/oksasatya/vendor-vault/internal/interface/http"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
)

// VendorModule wires the self-service routes.
// GET /api/me is open to every role; /api/vendor requires the vendor role.
type VendorModule struct {
	Handler  *handlers.VendorHandler
	Resolver application.IdentityResolver
	Redis    *redis.Client
}

func NewVendorModule(h *handlers.VendorHandler, resolver application.IdentityResolver, rdb *redis.Client) *VendorModule {
	return &VendorModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *VendorModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(
		middleware.Auth(m.Resolver),
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByPrincipal(), nil),
	)
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/vendor", m.Handler.Profile)
		auth.PUT("/vendor", m.Handler.UpdateProfile)
		auth.POST("/vendor/upload", m.Handler.Upload)
		auth.GET("/vendor/:id", m.Handler.GetRecord)
		auth.DELETE("/vendor/:id", m.Handler.DeleteRecord)
	}
}
