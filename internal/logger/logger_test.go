package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		log, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, log.SugaredLogger)
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.With("session", "abc").Warn("profile generation failed", "outcome", "service")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profile generation failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["session"])
	assert.Equal(t, "service", fields["outcome"])
}
