package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/utils"
)

// VerificationEmail is everything needed to render one verification message.
type VerificationEmail struct {
	ToName   string
	ToEmail  string
	Link     string
	IsResend bool
}

// Mailer delivers verification emails. A returned error means the message
// was not accepted for delivery.
type Mailer interface {
	SendVerification(ctx context.Context, msg VerificationEmail) error
}

// NewMailer returns the SendGrid mailer, or a logging mailer when no API key
// is configured outside production.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SendgridAPIKey == "" && !cfg.Production {
		utils.Logger.Warn("SENDGRID_API_KEY not set; verification links will be logged instead of emailed")
		return &logMailer{}
	}
	return NewSendgridMailer(cfg, sendgrid.NewSendClient(cfg.SendgridAPIKey))
}

// ------------------------------------------------------------------
// SendGrid
// ------------------------------------------------------------------

type sendgridMailer struct {
	cfg    *config.Config
	client *sendgrid.Client
}

func NewSendgridMailer(cfg *config.Config, client *sendgrid.Client) Mailer {
	return &sendgridMailer{cfg: cfg, client: client}
}

func (m *sendgridMailer) SendVerification(ctx context.Context, msg VerificationEmail) error {
	from := mail.NewEmail(m.cfg.OrganizationName+" Pledge", m.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)

	subject, intro := verificationCopy(msg.IsResend)
	plainTextContent := fmt.Sprintf(verificationEmailText, msg.ToName, intro, msg.Link)
	htmlContent := fmt.Sprintf(
		verificationEmailHTML,
		subject,
		html.EscapeString(msg.ToName),
		intro,
		html.EscapeString(msg.Link),
		html.EscapeString(msg.Link),
		time.Now().Year(),
	)

	email := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		metrics.EmailsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	metrics.EmailsTotal.WithLabelValues("ok").Inc()
	return nil
}

func verificationCopy(isResend bool) (subject, intro string) {
	if isResend {
		return "Your new pledge verification link",
			"Here is a fresh link to confirm your signature. Any earlier link no longer works."
	}
	return "Confirm your pledge signature",
		"Thank you for signing the pledge! Please confirm your email address so we can list your signature."
}

// ------------------------------------------------------------------
// Logging (dev only)
// ------------------------------------------------------------------

type logMailer struct{}

func (logMailer) SendVerification(_ context.Context, msg VerificationEmail) error {
	utils.Logger.WithField("to", msg.ToEmail).Infof("verification link (not emailed): %s", msg.Link)
	metrics.EmailsTotal.WithLabelValues("ok").Inc()
	return nil
}
