// Package events defines the audit and notification payloads the core emits.
// Emission is fire-and-forget from the write path's perspective: delivery
// (persistence of the audit log, real-time push to clients) belongs to
// external collaborators consuming the queues.
package events

import (
	"context"
	"time"
)

// AuditEvent records who did what to which entity.
type AuditEvent struct {
	Timestamp      time.Time              `json:"timestamp"`
	Actor          string                 `json:"actor"`
	Action         string                 `json:"action"`
	Details        map[string]interface{} `json:"details"`
	AffectedEntity string                 `json:"affected_entity"`
}

// NotificationEvent is a user-facing message for real-time delivery.
type NotificationEvent struct {
	Message   string                 `json:"message"`
	Severity  string                 `json:"severity"` // "success" | "info" | "warning"
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

const (
	ActionCreateDemande = "create_demande"

	SeveritySuccess = "success"
	SeverityWarning = "warning"
)

// Emitter pushes events towards the delivery collaborators. Implementations
// must be safe for concurrent use; errors are for logging only and must never
// fail the operation that emitted the event.
type Emitter interface {
	EmitAudit(ctx context.Context, ev AuditEvent) error
	EmitNotification(ctx context.Context, ev NotificationEvent) error
}
