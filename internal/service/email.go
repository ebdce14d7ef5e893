package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendVerificationEmail mails the email-verification link. In development the
// link is logged instead of sent.
func (s *EmailService) SendVerificationEmail(email, code string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?email=%s&code=%s", s.appURL, email, code)
	subject := fmt.Sprintf("Verify your %s email", s.appName)
	body := fmt.Sprintf(
		"Welcome to %s!\n\nConfirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, you can ignore this email.\n",
		s.appName, verifyURL,
	)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "email_verify", "to", email, "url", verifyURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "email_verify", "to", email)
	}
	return err
}
