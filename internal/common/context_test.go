package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Equal(t, "req-1", RequestIDFromContext(WithRequestID(ctx, "req-1")))

	fallback := slog.Default().With("component", "test")
	assert.Same(t, fallback, LoggerFromContext(ctx, fallback))

	scoped := slog.Default().With("request_id", "req-1")
	assert.Same(t, scoped, LoggerFromContext(WithLogger(ctx, scoped), fallback))
	assert.NotNil(t, LoggerFromContext(ctx, nil))
}
