// Package mail provides the outgoing mail implementation of the
// domain EmailSender service.
package mail

import (
	"context"
	"log/slog"
	"strings"

	"rolodex/config"
	"rolodex/internal/domain/service"
)

// logSender writes verification mail to the structured log instead of an
// SMTP relay. Deployments front this with a real provider; the registration
// flow only depends on the EmailSender interface.
type logSender struct {
	from      string
	verifyURL string
	logger    *slog.Logger
}

// NewLogSender is the constructor for logSender.
func NewLogSender(cfg *config.Config, logger *slog.Logger) service.EmailSender {
	from := "noreply@rolodex.local"
	verifyURL := "http://localhost:8080/api/auth/confirm"
	if cfg.Mail != nil {
		if cfg.Mail.From != "" {
			from = cfg.Mail.From
		}
		if cfg.Mail.VerificationURL != "" {
			verifyURL = cfg.Mail.VerificationURL
		}
	}

	return &logSender{
		from:      from,
		verifyURL: verifyURL,
		logger:    logger,
	}
}

// SendVerificationEmail logs the verification link for the given address.
func (s *logSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := strings.TrimSuffix(s.verifyURL, "/") + "/" + token

	s.logger.InfoContext(ctx, "Sending verification email",
		slog.String("from", s.from),
		slog.String("to", to),
		slog.String("link", link),
	)

	return nil
}
