package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/auth"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// EnsureValidToken is a middleware that will check the validity of the
// bearer token and resolve the caller's user record for the request.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "MISSING_TOKEN", "Authorization header with a bearer token is required")
			return
		}

		claims, err := auth.ParseToken(raw, cfg.JWTSecret)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Failed to validate token")
			return
		}

		var user models.User
		db := config.GetDB()
		if err := db.Where("username = ?", claims.Subject).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, "UNKNOWN_USER", "Token subject does not match a known user")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load user",
				},
			})
			c.Abort()
			return
		}

		if !user.Active {
			abortUnauthorized(c, "USER_DISABLED", "User account is disabled")
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// RequireRoles is a middleware that checks whether the authenticated
// caller holds any of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetCurrentUser(c)
		if err != nil {
			abortUnauthorized(c, "UNAUTHORIZED", "Could not resolve the authenticated user")
			return
		}

		if !user.HasAnyRole(roles...) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from the Gin context
func GetCurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_USER", Message: "User not found in context"}
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, &AuthError{Code: "INVALID_USER", Message: "User is not in the expected format"}
	}

	return user, nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
	c.Abort()
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
