package email

import (
	"context"
)

// EmailService sends account lifecycle notifications. Sending is best-effort
// throughout the service: a delivery failure is logged, never surfaced to the
// signup caller.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}
