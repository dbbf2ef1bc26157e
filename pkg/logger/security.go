package logger

import (
	"context"
	"log/slog"
)

// LevelSecurity marks security events: lockouts, admin unlocks, impersonation.
// It sits above slog.LevelError so it is emitted under every practical level
// configuration and can be routed to an alerting pipeline by level name.
const LevelSecurity = slog.LevelError + 4

// Security emits a security event on l at LevelSecurity. Use for events that
// must always reach the log stream regardless of environment: they are the
// audit trail for abuse-prevention decisions.
func Security(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	l.LogAttrs(ctx, LevelSecurity, msg, attrs...)
}

// replaceLevelName renders LevelSecurity as "SECURITY" instead of slog's
// default "ERROR+4" so downstream routing can match on the literal name.
func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == LevelSecurity {
			a.Value = slog.StringValue("SECURITY")
		}
	}
	return a
}
