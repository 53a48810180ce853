package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	assert.NotNil(t, ContextGetLogger(context.Background()))

	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextSetLogger(context.Background(), zap.New(core))
	ContextGetLogger(ctx).Info("hello")

	assert.Equal(t, 1, logs.FilterMessage("hello").Len())
}
