// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/integration/email/templates"
)

// Service renders and sends transactional emails. Sends happen inline;
// at single-user scale there is nothing to gain from a queue.
type Service struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *Service {
	return &Service{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: appBaseURL,
	}
}

// SendPasswordResetEmail renders and sends a password reset email.
func (s *Service) SendPasswordResetEmail(ctx context.Context, input adapter.SendPasswordResetInput) error {
	data := templates.PasswordResetData{
		UserName:  input.UserName,
		ResetURL:  fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, input.Token),
		ExpiresIn: input.ExpiresIn,
	}

	html, text, err := s.renderer.Render(templates.TemplatePasswordReset, data)
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	_, err = s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.UserEmail,
		Name:    input.UserName,
		Subject: "Reset your password - Boss Bitch",
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
