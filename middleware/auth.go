package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

// TokenValidator accepts or rejects a bearer token.
type TokenValidator func(ctx context.Context, token string) error

var errTokenMismatch = errors.New("token mismatch")

// SharedSecretValidator accepts exactly secret.
func SharedSecretValidator(secret string) TokenValidator {
	return func(_ context.Context, token string) error {
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return errTokenMismatch
		}
		return nil
	}
}

// GoogleIDTokenValidator accepts Google-signed OIDC ID tokens minted for
// audience, as sent by Cloud Scheduler, Eventarc and Pub/Sub push.
func GoogleIDTokenValidator(audience string) TokenValidator {
	return func(ctx context.Context, token string) error {
		_, err := idtoken.Validate(ctx, token, audience)
		return err
	}
}

// BearerAuth rejects requests whose Authorization bearer token fails validate.
func BearerAuth(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if err := validate(c.Request.Context(), token); err != nil {
			zap.L().Warn("Rejected trigger credentials", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Next()
	}
}
