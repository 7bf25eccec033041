package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)
}

func TestParseLevel_IsCaseInsensitive(t *testing.T) {
	lvl, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)
}

func TestParseLevel_RejectsUnknown(t *testing.T) {
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew_BuildsLogger(t *testing.T) {
	lggr, err := New("warn")
	require.NoError(t, err)
	require.NotNil(t, lggr)
}

func TestTestObserved_CapturesFieldsAndName(t *testing.T) {
	lggr, logs := TestObserved(t, zapcore.InfoLevel)
	named := lggr.Named("habits").With("component", "store")

	named.Debugw("ignored")
	named.Infow("habit added", "habit", "Recycle")

	require.Equal(t, "habits", named.Name())
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "habit added", entries[0].Message)
	require.Equal(t, "Recycle", entries[0].ContextMap()["habit"])
	require.Equal(t, "store", entries[0].ContextMap()["component"])
}
