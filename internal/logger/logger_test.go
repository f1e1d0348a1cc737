package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevelAndFormat(t *testing.T) {
	l := Init("DEBUG", "json")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = Init("nonsense", "text")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestWithContextAddsRequestFields(t *testing.T) {
	hook := test.NewLocal(GetAppLogger())
	defer hook.Reset()

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-7")
	WithContext(ctx).Info("imported")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "imported", entry.Message)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "user-7", entry.Data["user_id"])
}
