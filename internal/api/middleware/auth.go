package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
)

// IdentityKey is the gin context key holding the authenticated *auth.Identity
const IdentityKey = "identity"

// Authenticator resolves a bearer token to an identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

// JWTAuth requires a valid "Authorization: Bearer <token>" header
func JWTAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, apperrors.ErrUnauthorized("missing bearer token"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, apperrors.ErrUnauthorized("malformed authorization header"))
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, apperrors.AsAppError(err))
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err *apperrors.AppError) {
	status := err.StatusCode
	if status == 0 {
		status = http.StatusUnauthorized
	}
	c.Set(ErrorCodeKey, err.Code)
	message := err.Message
	if status >= http.StatusInternalServerError {
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": err.Code, "message": message}})
}

// IdentityFrom returns the identity set by JWTAuth
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok && identity != nil
}
