package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	log, err := New("prod", "debug", path)
	require.NoError(t, err)

	log.Named("ledger").Info("строка сохранена", zap.String("company", "Google"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"company":"Google"`)
	assert.Contains(t, string(data), `"logger":"ledger"`)
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	log, err := New("dev", "verbose", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}
