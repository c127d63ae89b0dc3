// Package log provides the logging abstraction used by bookcat components.
//
// Components depend on the Logger interface only. A zerolog-backed adapter
// is provided for the CLI and a no-op logger for tests and embedders that
// do not want output.
//
//	logger := log.NewZerologAdapter(zerolog.InfoLevel)
//	logger.Info("page loaded", log.String("query", q), log.Int("count", n))
//
// Implement Logger to route bookcat output into an existing logging stack.
package log
