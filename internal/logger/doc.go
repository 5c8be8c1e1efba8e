// Package logger wraps zap with a global sugared logger, a parseable
// level, and context propagation so components log under their own name.
package logger
