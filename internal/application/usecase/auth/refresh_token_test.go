package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// fakeTokenService hands out deterministic token pairs and tracks
// which refresh tokens have been invalidated.
type fakeTokenService struct {
	userID      uuid.UUID
	email       string
	invalidated map[string]bool
}

func newFakeTokenService(userID uuid.UUID, email string) *fakeTokenService {
	return &fakeTokenService{
		userID:      userID,
		email:       email,
		invalidated: make(map[string]bool),
	}
}

func (f *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{AccessToken: "access-next", RefreshToken: "refresh-next"}, nil
}

func (f *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return &adapter.TokenClaims{UserID: f.userID, Email: f.email}, nil
}

func (f *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if token == "" {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: f.userID, Email: f.email}, nil
}

func (f *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.invalidated[token] = true
	return nil
}

func (f *fakeTokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return !f.invalidated[token], nil
}

func TestRefreshTokenUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("signs the session in for the token's user", func(t *testing.T) {
		// After a daemon restart the session starts anonymous; a valid
		// refresh token must recover the identity, not just mint tokens.
		tokens := newFakeTokenService(userID, "boss@example.com")
		sess := session.NewManager()
		uc := NewRefreshTokenUseCase(tokens, sess)

		output, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "refresh-old"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected a fresh token pair")
		}

		id, email, ok := sess.Current()
		if !ok || id != userID || email != "boss@example.com" {
			t.Errorf("expected the session signed in as the token's user, got (%v, %q, %v)", id, email, ok)
		}
	})

	t.Run("old refresh token is invalidated", func(t *testing.T) {
		tokens := newFakeTokenService(userID, "boss@example.com")
		uc := NewRefreshTokenUseCase(tokens, session.NewManager())

		if _, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "refresh-old"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tokens.invalidated["refresh-old"] {
			t.Error("expected the used refresh token to be invalidated")
		}
	})

	t.Run("revoked token does not touch the session", func(t *testing.T) {
		tokens := newFakeTokenService(userID, "boss@example.com")
		tokens.invalidated["refresh-old"] = true
		sess := session.NewManager()
		uc := NewRefreshTokenUseCase(tokens, sess)

		_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "refresh-old"})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidToken {
			t.Fatalf("expected an invalid-token error, got %v", err)
		}
		if sess.Authenticated() {
			t.Error("expected the session to stay anonymous")
		}
	})
}
