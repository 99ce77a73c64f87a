package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core)).With("component", "cart-store")

	log.Warnw("item not in cart", "id", "A")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "item not in cart", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "cart-store", fields["component"])
	assert.Equal(t, "A", fields["id"])
}

func TestNewZapLogger_FallsBackToInfoOnBadLevel(t *testing.T) {
	log, err := NewZapLogger(ZapLoggerConfig{Level: "loud", Encoding: "console"})

	require.NoError(t, err)
	assert.NotNil(t, log)
}
