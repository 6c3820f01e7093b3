package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/domain/account"
	"github.com/anish9011/plant/internal/platform/ctxutil"
	"github.com/anish9011/plant/internal/platform/logger"
)

// TokenParser verifies an access token and returns the identity it carries.
type TokenParser interface {
	ParseToken(token string) (*ctxutil.AccountData, error)
}

type AdminGuard struct {
	log     *logger.Logger
	tokens  TokenParser
	enforce bool
}

// NewAdminGuard returns a guard for the /admin routes. With enforce off the
// guard only attaches identity when a valid token happens to be present.
func NewAdminGuard(log *logger.Logger, tokens TokenParser, enforce bool) *AdminGuard {
	return &AdminGuard{log: log.With("middleware", "AdminGuard"), tokens: tokens, enforce: enforce}
}

func (g *AdminGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		var ad *ctxutil.AccountData
		if token != "" && g.tokens != nil {
			parsed, err := g.tokens.ParseToken(token)
			if err == nil {
				ad = parsed
				c.Request = c.Request.WithContext(ctxutil.WithAccountData(c.Request.Context(), ad))
			} else if g.enforce {
				g.log.Debug("admin token rejected", "path", c.FullPath(), "error", err)
			}
		}
		if !g.enforce {
			c.Next()
			return
		}
		if ad == nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		if ad.Role != account.RoleAdmin {
			abort(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"message": msg, "code": code},
	})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Query("token"))
}
