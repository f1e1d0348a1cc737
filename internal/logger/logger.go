package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ContextKey is the type of the values the request middleware stores in a context
type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
	UserIDKey    ContextKey = "userID"
)

var (
	appLogger *logrus.Logger
	once      sync.Once
)

// Init configures the application logger. Unknown levels fall back to info.
func Init(level, format string) *logrus.Logger {
	l := GetAppLogger()

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// GetAppLogger returns the shared logger, creating it on first use.
func GetAppLogger() *logrus.Logger {
	once.Do(func() {
		appLogger = logrus.New()
		appLogger.SetOutput(os.Stdout)
	})
	return appLogger
}

// WithContext returns an entry carrying the request fields stored in ctx
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if ctx == nil {
		return entry
	}
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}
	if userID := ctx.Value(UserIDKey); userID != nil {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}
