package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/dstanton/taskminder/internal/config"
	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/platform/logger"
)

// Provider presets map the configured provider name to SMTP endpoints.
// An explicit smtp.host overrides the preset.
var providerHosts = map[string]struct {
	host string
	port int
}{
	"gmail":   {host: "smtp.gmail.com", port: 587},
	"outlook": {host: "smtp.office365.com", port: 587},
}

// SMTPMailer implements Mailer over an authenticated SMTP connection.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	host   string
	port   int
	logger *slog.Logger
}

// Ensure SMTPMailer implements the Mailer interface
var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from the SMTP configuration. Missing
// credentials are not an error; the resulting mailer reports Skipped on
// every send.
func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	host := cfg.Host
	port := cfg.Port
	if host == "" {
		preset, ok := providerHosts[cfg.Provider]
		if !ok {
			return nil, fmt.Errorf("smtp host required for provider %q", cfg.Provider)
		}
		host = preset.host
		if port == 0 {
			port = preset.port
		}
	}
	if port == 0 {
		port = 587
	}

	return &SMTPMailer{
		cfg:    cfg,
		host:   host,
		port:   port,
		logger: logger.With(slog.String("component", "smtp_mailer")),
	}, nil
}

// Configured reports whether the transport has credentials to send with.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send implements Mailer.Send. It composes the reminder message and hands it
// to the SMTP transport.
func (m *SMTPMailer) Send(ctx context.Context, task *domain.Task, recipient string) (Result, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if recipient == "" {
		log.Debug("no recipient for reminder, skipping send",
			slog.String("task_id", task.ID.String()))
		return Skipped, nil
	}

	if !m.Configured() {
		log.Info("smtp credentials not configured, skipping send",
			slog.String("task_id", task.ID.String()))
		return Skipped, nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return Failed, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return Failed, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subjectFor(task))
	msg.SetBodyString(gomail.TypeTextPlain, textBody(task))
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody(task))

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return Failed, fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Warn("reminder delivery failed",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return Failed, fmt.Errorf("failed to send reminder: %w", err)
	}

	log.Info("reminder email sent",
		slog.String("task_id", task.ID.String()),
		slog.String("recipient", recipient))
	return Delivered, nil
}
