package services

import (
	"context"
	"fmt"

	"binreminder-http-service/internal/infrastructure/config"

	"github.com/resend/resend-go/v2"
)

// InterfaceEmailService defines the Email channel provider interface
type InterfaceEmailService interface {
	SendHTML(ctx context.Context, to, subject, html string) error
}

// EmailService sends emails via the Resend API
type EmailService struct {
	client *resend.Client
	from   string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) InterfaceEmailService {
	return &EmailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.EmailFromAddr,
	}
}

// SendHTML sends a single HTML email
func (s *EmailService) SendHTML(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
