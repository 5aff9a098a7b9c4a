package middleware

import (
	"net/http"
	"strings"

	"taskboard/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// TokenParser validates an access token and returns the identity it carries.
type TokenParser interface {
	Parse(token string) (*auth.Identity, error)
}

// JWTAuthMiddleware rejects requests without a valid Bearer token. On success
// the user id (uuid.UUID) and email are stored in the gin context.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			unauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		identity, err := tokens.Parse(parts[1])
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(identity.UserID)
		if err != nil {
			unauthorized(c, "Invalid user ID in token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, identity.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"data":    nil,
		"error": gin.H{
			"message": message,
			"type":    "unauthorized",
		},
	})
}
