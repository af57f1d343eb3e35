package jobs

import "context"

// Mailer adapts the queue client to the auth service's Mailer interface.
// Enqueueing is the send: delivery happens in the worker.
type Mailer struct {
	client *Client
}

// NewMailer constructs a Mailer.
func NewMailer(client *Client) *Mailer {
	return &Mailer{client: client}
}

// SendVerificationEmail queues a verification email.
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	_, err := m.client.EnqueueSendEmail(ctx, SendEmailPayload{
		To:       to,
		Template: TemplateVerifyEmail,
		Token:    token,
	})
	return err
}

// SendPasswordResetEmail queues a password-reset email.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	_, err := m.client.EnqueueSendEmail(ctx, SendEmailPayload{
		To:       to,
		Template: TemplatePasswordReset,
		Token:    token,
	})
	return err
}
