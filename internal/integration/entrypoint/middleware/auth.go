// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication middleware. Besides
// validating the token it checks the claims against the daemon's active
// session: the data façade routes by session identity, so a token for
// any other account (or a token arriving while the session is still
// anonymous after a restart) is rejected rather than silently served
// another user's data.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	session      *session.Manager
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService, sess *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		session:      sess,
	}
}

// checkSession rejects claims that do not belong to the current session
// user. Returns false after writing the error response.
func (m *AuthMiddleware) checkSession(c *gin.Context, claims *adapter.TokenClaims) bool {
	if userID, _, ok := m.session.Current(); !ok || userID != claims.UserID {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Token does not match the active session, sign in again",
			Code:  string(domainerror.ErrCodeSessionMismatch),
		})
		c.Abort()
		return false
	}
	return true
}

// Authenticate returns a Gin middleware handler that enforces JWT
// authentication. Requests without a valid bearer token are rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errResponse := bearerToken(c)
		if errResponse != nil {
			c.JSON(http.StatusUnauthorized, *errResponse)
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		if !m.checkSession(c, claims) {
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// OptionalAuthenticate returns a Gin middleware handler for endpoints
// that serve both anonymous and signed-in callers. A missing header
// passes through anonymously; a present but invalid token is still
// rejected so callers learn their session expired instead of silently
// writing to the anonymous store.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, errResponse := bearerToken(c)
		if errResponse != nil {
			c.JSON(http.StatusUnauthorized, *errResponse)
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		if !m.checkSession(c, claims) {
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) (string, *dto.ErrorResponse) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", &dto.ErrorResponse{
			Error: "Authorization header is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", &dto.ErrorResponse{
			Error: "Invalid authorization header format",
			Code:  string(domainerror.ErrCodeInvalidToken),
		}
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", &dto.ErrorResponse{
			Error: "Token is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}

	return token, nil
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
