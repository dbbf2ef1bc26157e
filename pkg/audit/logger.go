package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfort/guardkit/pkg/logger"
)

// Logger emits audit events at the security log level. It is safe for
// concurrent use; construct one per process and inject it into the
// components that produce security events.
type Logger struct {
	log *slog.Logger
	now func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates an audit Logger writing through the provided slog
// logger. A nil log falls back to slog.Default.
func NewLogger(log *slog.Logger, opts ...Option) *Logger {
	if log == nil {
		log = slog.Default()
	}
	l := &Logger{log: log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log validates and emits an audit event for action. The event is assigned a
// fresh UUID and timestamp; options fill in the rest.
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := Event{
		ID:        uuid.NewString(),
		Action:    action,
		Result:    ResultSuccess,
		CreatedAt: l.now().UTC(),
	}
	for _, opt := range opts {
		opt(&event)
	}
	if err := event.Validate(); err != nil {
		return err
	}

	attrs := make([]slog.Attr, 0, 8)
	attrs = append(attrs,
		slog.String("audit_id", event.ID),
		slog.String("action", event.Action),
		slog.String("result", string(event.Result)),
		slog.Time("created_at", event.CreatedAt),
	)
	if event.Identifier != "" {
		attrs = append(attrs, logger.Identifier(event.Identifier))
	}
	if event.Actor != "" {
		attrs = append(attrs, logger.Actor(event.Actor))
	}
	if event.IP != "" {
		attrs = append(attrs, logger.ClientIP(event.IP))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	logger.Security(ctx, l.log, event.Action, attrs...)
	return nil
}
