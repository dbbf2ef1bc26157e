// Package audit records security-relevant events — lockouts, administrative
// unlocks, impersonation — as structured records emitted at the dedicated
// SECURITY log level.
//
// Events carry a UUID, an action name, the affected identifier, the acting
// principal for administrative operations, and arbitrary metadata. They are
// written through the shared slog logger so the encompassing log pipeline can
// route them to alerting by level name without a separate transport.
//
// # Usage
//
//	auditor := audit.NewLogger(log)
//	_ = auditor.Log(ctx, "account_locked",
//		audit.WithIdentifier("user@example.com"),
//		audit.WithMetadata(map[string]any{"failed_attempts": 5}),
//	)
package audit
