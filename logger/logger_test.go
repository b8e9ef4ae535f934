package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLBeforeInitIsNoop(t *testing.T) {
	if global != nil {
		t.Skip("logger already initialised by another test")
	}
	assert.NotNil(t, L())
	assert.NotPanics(t, func() { Info("ignored") })
}

func TestInit(t *testing.T) {
	require.NoError(t, Init("error", "json"))
	assert.NotNil(t, L())
	assert.NotPanics(t, func() { Warn("dropped below level") })
}
