package service

import "context"

// EmailSender delivers account verification mail. The registration flow
// treats delivery as best-effort: a failed send is logged, not surfaced.
type EmailSender interface {
	// SendVerificationEmail sends the signed verification token to the given
	// address.
	SendVerificationEmail(ctx context.Context, to, token string) error
}
