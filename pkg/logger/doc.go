// Package logger builds *slog.Logger instances with functional options,
// consistent attribute helpers and attributes pulled from context.Context.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format and wraps it in LogHandlerDecorator, which runs every registered
// ContextExtractor before delegating a record. Helpers in attr.go such as
// Error, Component, CacheKey and ClinicID keep attribute names uniform across
// the dashboard.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "clinicdash"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "clinic summary refreshed",
//	    logger.ClinicID(id),
//	    logger.Duration(time.Since(start)),
//	)
//
// Or from environment variables:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log, err := logger.NewFromConfig(cfg)
//
// # Environments
//
// WithEnvironment selects debug level with text output for development and
// info level with JSON output for staging and production. "prod" and "stage"
// are accepted as aliases.
//
// # Error Handling
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally:
//
//	log.Info("warm-up finished", logger.Error(err))
package logger
