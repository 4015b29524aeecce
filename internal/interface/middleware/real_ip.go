package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP into Gin context (key: CtxRealIPKey). Proxy headers
// are honoured only when trustProxy is set, in this order:
// CF-Connecting-IP, X-Real-IP, then the left-most X-Forwarded-For entry.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustProxy {
			ip = firstValidIP(
				c.GetHeader("CF-Connecting-IP"),
				c.GetHeader("X-Real-IP"),
				strings.Split(c.GetHeader("X-Forwarded-For"), ",")[0],
			)
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func firstValidIP(candidates ...string) string {
	for _, s := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
			return ip.String()
		}
	}
	return ""
}
