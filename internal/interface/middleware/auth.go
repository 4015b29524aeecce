package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
	"github.com/oksasatya/vendor-vault/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxPrincipalKey = "principal"
	CtxRealIPKey    = "real_ip"
)

// Auth resolves the bearer token (or access_token cookie) into a principal.
// It sets userID and principal in the Gin context on success.
func Auth(resolver application.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := resolver.ResolvePrincipal(c.Request.Context(), helpers.AccessToken(c))
		if err != nil || p == nil {
			response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, p.ID)
		c.Set(CtxPrincipalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Auth, or nil.
func PrincipalFrom(c *gin.Context) *entity.Principal {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}
