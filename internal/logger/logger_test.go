package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipwrite/pkg/cliptypes"
)

func TestConfigure_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{name: "debug", level: "debug", expected: log.DebugLevel},
		{name: "warn", level: "warn", expected: log.WarnLevel},
		{name: "error", level: "error", expected: log.ErrorLevel},
		{name: "unknown falls back to info", level: "bogus", expected: log.InfoLevel},
		{name: "empty defaults to info", level: "", expected: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLIPWRITE_LOG_LEVEL", "")
			require.NoError(t, Configure(tt.level, "", false))
			assert.Equal(t, tt.expected, Logger.GetLevel())
		})
	}
}

func TestSink_ForwardsLevels(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)

	sink := Sink()

	sink(cliptypes.LevelSuccess, "clipboard write succeeded", map[string]any{"method": "native"})
	sink(cliptypes.LevelWarning, "clipboard method failed", map[string]any{"method": "command"})
	sink(cliptypes.LevelError, "all clipboard methods failed", nil)

	output := buf.String()
	assert.Contains(t, output, "clipboard write succeeded")
	assert.Contains(t, output, "method=native")
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "ERRO")
}

func TestSink_SortedDataKeys(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)
	Logger.SetTimeFormat("")

	Sink()(cliptypes.LevelSuccess, "ok", map[string]any{
		"zeta":  "z",
		"alpha": "a",
	})

	output := buf.String()
	assert.Less(t, indexOf(output, "alpha"), indexOf(output, "zeta"))
}

func indexOf(s, sub string) int {
	return bytes.Index([]byte(s), []byte(sub))
}

func TestNewStyledLogger(t *testing.T) {
	require.NoError(t, Configure("debug", "", false))

	styled := NewStyledLogger("Coordinator")

	require.NotNil(t, styled)
	assert.Equal(t, "Coordinator ", styled.GetPrefix())
	// Component loggers follow the global level.
	assert.Equal(t, Logger.GetLevel(), styled.GetLevel())
}
