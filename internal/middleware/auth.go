// Package middleware provides HTTP middleware for the blog service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticator resolves an access token to a caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*service.Identity, error)
}

// RequireAuth rejects requests without a valid bearer access token and
// stores the caller's identity on the context for handlers.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, service.ErrInvalidToken) {
			abort(c, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "authentication failed", "error", err)
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := v.(service.Identity)
	return identity, ok
}

// SetIdentity stores identity on the context, as RequireAuth does.
func SetIdentity(c *gin.Context, identity service.Identity) {
	c.Set(identityKey, identity)
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header.
func ExtractBearerToken(c *gin.Context) string {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code": status,
		"msg":  msg,
		"data": gin.H{},
	})
}
