// Package logger builds the slog loggers used by the store, the HTTP server
// and the CLI.
//
// A logger is configured with functional options and always wraps its
// handler in a context decorator, so values stored in a context (request ID,
// catalog path) appear on every record logged with that context:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(logger.CatalogExtractor()),
//	)
//
//	ctx = logger.WithCatalog(ctx, "/src/app/Localizable.xcstrings")
//	log.InfoContext(ctx, "catalog committed", slog.Int("bytes", 2048))
//	// ... catalog=/src/app/Localizable.xcstrings bytes=2048
//
// # Sentry
//
// WithSentry fans records out to Sentry as well as the primary writer.
// Errors become Sentry issues and warnings are kept as breadcrumb logs. An
// empty DSN disables the integration, and a failed initialisation is
// reported on the primary writer instead of aborting start-up. Call Flush
// before the process exits so buffered events are delivered.
//
// NewNope returns a logger that discards everything; packages use it as the
// default when the caller passes no logger.
package logger
