package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypePruneSessions is the task type for expiring stale sessions.
	TaskTypePruneSessions = "sessions:prune"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Token    string `json:"token,omitempty"`
}

// Email templates the worker knows how to render.
const (
	TemplateVerifyEmail   = "verify-email"
	TemplatePasswordReset = "password-reset"
)

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: SMTP delivery is wired per environment.
	fmt.Printf("[jobs] send email to %s template=%s\n", payload.To, payload.Template)
	return nil
}

// NewPruneSessionsTask constructs the periodic session-pruning task.
func NewPruneSessionsTask() *asynq.Task {
	return asynq.NewTask(TaskTypePruneSessions, nil)
}
