package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents one gate audit event
type AuditEvent struct {
	EventType     string
	AttemptID     string
	Identity      string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger records credential attempts and gate transitions
type AuditLogger struct {
	logger *slog.Logger
	env    string
	now    func() time.Time
}

// NewAuditLogger creates a new audit logger. Identities are masked
// unless env is "development".
func NewAuditLogger(logger *slog.Logger, env string, now func() time.Time) *AuditLogger {
	if now == nil {
		now = time.Now
	}
	return &AuditLogger{
		logger: logger,
		env:    env,
		now:    now,
	}
}

// LogAttempt logs a credential submission. Secrets are never logged.
func (al *AuditLogger) LogAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "gate"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", al.now().UTC().Format(time.RFC3339)),
	}

	if event.AttemptID != "" {
		attrs = append(attrs, slog.String("attempt_id", event.AttemptID))
	}
	if event.Identity != "" {
		attrs = append(attrs, al.identityAttr(event.Identity))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	if event.Success {
		al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
	} else {
		al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit", attrs...)
	}
}

// LogTransition logs a gate phase change
func (al *AuditLogger) LogTransition(from, to string, metadata map[string]string) {
	attrs := []slog.Attr{
		slog.String("audit_type", "gate"),
		slog.String("event_type", "transition"),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("timestamp", al.now().UTC().Format(time.RFC3339)),
	}

	for key, val := range metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
}

func (al *AuditLogger) identityAttr(identity string) slog.Attr {
	if al.env == "development" {
		return slog.String("identity", identity)
	}
	return slog.String("identity", MaskIdentity(identity))
}
