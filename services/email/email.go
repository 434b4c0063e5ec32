package email

import (
	"context"
	"fmt"

	"bookify/config"
	"bookify/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailAction names the booking transition an email announces.
type EmailAction string

const (
	ActionConfirmed   EmailAction = "confirmed"
	ActionRescheduled EmailAction = "rescheduled"
	ActionCancelled   EmailAction = "cancelled"
)

// AppointmentEmail carries everything needed to address one appointment email.
type AppointmentEmail struct {
	To           string
	CustomerName string
	ProviderName string
	Date         string // "YYYY-MM-DD"
	TimeRange    string // e.g. "9:00 AM - 9:30 AM"
	Action       EmailAction
}

// EmailNotifier defines the email side-effect contract. Implementations are
// best-effort; callers log failures and never roll back a committed booking.
type EmailNotifier interface {
	SendAppointmentEmail(ctx context.Context, msg AppointmentEmail) error
}

// SendGridNotifier sends appointment emails via the SendGrid API.
type SendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridNotifier builds a notifier from the loaded configuration. It
// returns nil when no API key is configured; callers fall back to the stub.
func NewSendGridNotifier() *SendGridNotifier {
	if config.AppConfig.SendGridAPIKey == "" {
		return nil
	}
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey),
		fromEmail: config.AppConfig.EmailFrom,
		fromName:  config.AppConfig.EmailFromName,
	}
}

func (s *SendGridNotifier) SendAppointmentEmail(ctx context.Context, msg AppointmentEmail) error {
	subject, body := composeAppointmentEmail(msg)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.CustomerName, msg.To)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	utils.GetLogger().Info("appointment email sent",
		zap.String("to", msg.To),
		zap.String("action", string(msg.Action)))
	return nil
}

func composeAppointmentEmail(msg AppointmentEmail) (subject, body string) {
	switch msg.Action {
	case ActionRescheduled:
		subject = "Your appointment has been rescheduled"
		body = fmt.Sprintf("Hi %s,\n\nYour appointment with %s has been moved to %s at %s.\n\nThe Bookify team",
			msg.CustomerName, msg.ProviderName, msg.Date, msg.TimeRange)
	case ActionCancelled:
		subject = "Your appointment has been cancelled"
		body = fmt.Sprintf("Hi %s,\n\nYour appointment with %s on %s at %s has been cancelled.\n\nThe Bookify team",
			msg.CustomerName, msg.ProviderName, msg.Date, msg.TimeRange)
	default:
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf("Hi %s,\n\nYour appointment with %s on %s at %s is confirmed. See you there!\n\nThe Bookify team",
			msg.CustomerName, msg.ProviderName, msg.Date, msg.TimeRange)
	}
	return subject, body
}

// StubNotifier logs instead of sending. Used in development and when no
// SendGrid key is configured.
type StubNotifier struct{}

func (s *StubNotifier) SendAppointmentEmail(_ context.Context, msg AppointmentEmail) error {
	utils.GetLogger().Info("email sending disabled, skipping appointment email",
		zap.String("to", msg.To),
		zap.String("action", string(msg.Action)))
	return nil
}
