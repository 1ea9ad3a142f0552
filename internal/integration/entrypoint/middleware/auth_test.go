package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// stubTokenService resolves every token to a fixed set of claims keyed
// by the token string.
type stubTokenService struct {
	claims map[string]*adapter.TokenClaims
}

func (s *stubTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	return nil, nil
}

func (s *stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, domainerror.ErrInvalidToken
}

func (s *stubTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.ValidateAccessToken(ctx, token)
}

func (s *stubTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return nil
}

func (s *stubTokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *stubTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return true, nil
}

func TestAuthMiddleware_SessionIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	aliceID := uuid.New()
	bobID := uuid.New()
	tokens := &stubTokenService{claims: map[string]*adapter.TokenClaims{
		"alice-token": {UserID: aliceID, Email: "alice@example.com"},
		"bob-token":   {UserID: bobID, Email: "bob@example.com"},
	}}

	newRouter := func(sess *session.Manager, optional bool) *gin.Engine {
		m := NewAuthMiddleware(tokens, sess)
		r := gin.New()
		handler := m.Authenticate()
		if optional {
			handler = m.OptionalAuthenticate()
		}
		r.GET("/data", handler, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	get := func(r *gin.Engine, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/data", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("token matching the session user is accepted", func(t *testing.T) {
		sess := session.NewManager()
		sess.SignIn(aliceID, "alice@example.com")

		if w := get(newRouter(sess, false), "alice-token"); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("token for another account is rejected", func(t *testing.T) {
		sess := session.NewManager()
		sess.SignIn(aliceID, "alice@example.com")

		w := get(newRouter(sess, false), "bob-token")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var resp dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse error response: %v", err)
		}
		if resp.Code != string(domainerror.ErrCodeSessionMismatch) {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeSessionMismatch, resp.Code)
		}
	})

	t.Run("valid token against an anonymous session is rejected", func(t *testing.T) {
		sess := session.NewManager()

		if w := get(newRouter(sess, true), "alice-token"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("optional auth still passes anonymous requests through", func(t *testing.T) {
		sess := session.NewManager()

		if w := get(newRouter(sess, true), ""); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("optional auth applies the same identity check", func(t *testing.T) {
		sess := session.NewManager()
		sess.SignIn(aliceID, "alice@example.com")

		if w := get(newRouter(sess, true), "bob-token"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
