package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" INFO ", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"-1", zapcore.DebugLevel},
		{"2", zapcore.ErrorLevel},
	}

	for _, aTestCase := range testCases {
		l, err := ParseLevel(aTestCase.input)
		require.NoError(t, err, aTestCase.input)
		assert.Equal(t, aTestCase.expected, l, aTestCase.input)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger, err := New("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New("info", "xml")
	assert.Error(t, err)

	_, err = New("loud", "json")
	assert.Error(t, err)
}
