// Package logger provides structured logging for apikit built on zerolog.
//
// Services obtain a component-tagged logger and emit one debug line per
// completed request with method, path, status, and duration fields. Test
// suites typically initialize it once from the environment:
//
//	logger.Init(logger.Config{Level: "debug", Format: "console"})
package logger
