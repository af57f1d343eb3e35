package moderation

import "time"

// ReportStatus tracks the moderation queue lifecycle.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "OPEN"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Action enumerates what an admin may do with a report.
type Action string

const (
	ActionDismiss       Action = "DISMISS"
	ActionWarn          Action = "WARN"
	ActionSuspendUser   Action = "SUSPEND_USER"
	ActionRemoveContent Action = "REMOVE_CONTENT"
)

// Report is a user-filed complaint about content or another account.
type Report struct {
	ID             string       `json:"id"`
	ReporterID     string       `json:"reporterId"`
	TargetUserID   string       `json:"targetUserId"`
	TargetType     string       `json:"targetType"`
	TargetID       string       `json:"targetId"`
	Reason         string       `json:"reason"`
	Status         ReportStatus `json:"status"`
	ResolvedBy     string       `json:"resolvedBy,omitempty"`
	ResolvedAction Action       `json:"resolvedAction,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	ResolvedAt     *time.Time   `json:"resolvedAt,omitempty"`
}
