package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestLoggerFromContextFallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)

	assert.NotPanics(t, func() {
		logger.WithFields(nil).Info("nothing happens", nil)
		logger.Error("nothing happens", nil, nil)
	})
}

func TestNormalizeTraceID(t *testing.T) {
	incoming := "6f1c2a4e-8d2b-4f7a-9c11-0a3b5d7e9f21"
	assert.Equal(t, incoming, NormalizeTraceID(incoming))

	for _, bad := range []string{"", "abc", "<script>"} {
		got := NormalizeTraceID(bad)
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 36)
	}
	assert.NotEqual(t, NormalizeTraceID(""), NormalizeTraceID(""))
}
