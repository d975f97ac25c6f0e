package migrations

import (
	"testing"

	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestRun_SkipsWithoutDatabase(t *testing.T) {
	cfg := &config.Cfg{Migrations: config.Migrations{Path: "file://does-not-exist"}}
	assert.NoError(t, Run(cfg, logger.Nop()))
}
