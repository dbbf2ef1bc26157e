// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static default
// attributes, and ContextExtractor callbacks that inject request-scoped
// attributes (such as a request id) on every Handle call.
//
// On top of the standard levels the package defines LevelSecurity, a level
// above ERROR used for security events (account lockouts, admin unlocks).
// Records at this level are rendered with the literal level name "SECURITY"
// so log routers can forward them to an alerting pipeline, and they are
// emitted under every practical level configuration.
//
// # Usage
//
//	log := logger.New(
//		logger.WithProduction("auth-core"),
//		logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	logger.Security(ctx, log, "account locked",
//		logger.Identifier("user@example.com"),
//		logger.Event("lockout_triggered"),
//	)
package logger
