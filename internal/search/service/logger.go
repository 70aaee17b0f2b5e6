package service

import (
	"context"

	"github.com/ai-search-engine/search-backend/internal/requestid"
	"github.com/apex/log"
)

// Logger provides structured logging for services
type Logger struct {
	entry *log.Entry
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := requestid.Get(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{entry: log.WithField("request_id", requestID)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.entry.WithField("operation", operation).WithError(err).Error("operation failed")
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.entry.WithField("operation", operation).Warnf(format, args...)
}
