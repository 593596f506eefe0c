package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"go.uber.org/zap"
)

const contextKeyClaims = "token_claims"

// RequireAuth authenticates the request with an Authorization header
// ("Bearer <token>" or "Token <token>") and falls back to the session.
// Inactive users are rejected.
func RequireAuth(tokens *services.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint64

		if raw, ok := bearerToken(c); ok {
			claims, err := tokens.Parse(c.Request.Context(), raw)
			if err != nil {
				if !errors.Is(err, services.ErrInvalidToken) && !errors.Is(err, services.ErrTokenRevoked) {
					logger.Log.Error("token_check_failed", zap.Error(err))
				}
				apierrors.Unauthorized(c, "Invalid token")
				c.Abort()
				return
			}
			userID = claims.UserID
			c.Set(contextKeyClaims, claims)
			c.Set(constants.ContextKeyTokenID, claims.ID)
		} else {
			session := sessions.Default(c)
			c.Set(constants.ContextKeyUserID, session.Get(constants.ContextKeyUserID))
			id, ok := GetUserID(c)
			if !ok {
				apierrors.Unauthorized(c, "")
				c.Abort()
				return
			}
			userID = id
		}

		user, err := users.FindByID(userID)
		if err != nil || !user.IsActive {
			apierrors.Unauthorized(c, "User inactive or deleted")
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	for _, scheme := range []string{"Bearer ", "Token "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):]), true
		}
	}
	return "", false
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// GetActor returns the caller as a services.Actor
func GetActor(c *gin.Context) (services.Actor, bool) {
	if user, ok := GetUser(c); ok {
		return services.Actor{UserID: user.ID, IsStaff: user.IsStaff}, true
	}
	userID, ok := GetUserID(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID}, true
}

// GetClaims returns the token claims when the request used a token
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	v, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
