// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// SendPasswordResetInput carries the data for a password reset email.
type SendPasswordResetInput struct {
	UserEmail string
	UserName  string
	Token     string
	ExpiresIn string
}

// EmailService defines the interface for sending transactional emails.
type EmailService interface {
	// SendPasswordResetEmail renders and sends a password reset email.
	SendPasswordResetEmail(ctx context.Context, input SendPasswordResetInput) error
}
