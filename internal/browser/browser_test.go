package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultTimeouts(t *testing.T) {
	b := New(Config{Headless: true})
	assert.Equal(t, 30*time.Second, b.cfg.Timeout)
	assert.Equal(t, 60*time.Second, b.cfg.NavigateTimeout)

	b = New(Config{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, b.cfg.Timeout)
}

func TestNewPage_NotLaunched(t *testing.T) {
	b := New(Config{})
	_, err := b.NewPage(context.Background())
	require.Error(t, err)
}

func TestClose_NotLaunched(t *testing.T) {
	b := New(Config{})
	assert.NoError(t, b.Close())
	assert.NoError(t, b.Close())
}

func TestGetEnvMap(t *testing.T) {
	assert.Nil(t, New(Config{}).getEnvMap())
	assert.Equal(t, map[string]string{"DISPLAY": ":1"}, New(Config{Display: ":1"}).getEnvMap())
}
