// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	session      *session.Manager
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, sess *session.Manager) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		session:      sess,
	}
}

// Execute invalidates the refresh token and signs the device session
// out, which drops the remote store binding and routes subsequent
// requests to the local store.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// The token might already be invalid; logout still succeeds.
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	uc.session.SignOut()

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
