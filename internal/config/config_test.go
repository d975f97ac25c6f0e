package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("COMPANIES", "")
	t.Setenv("JOBS_DEDUP", "")
	t.Setenv("JOBS_SCORE_POLICY", "")
	t.Setenv("CV_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "Vikas_CV_1.pdf", cfg.Pipeline.CVFile)
	assert.Equal(t, "jobs.csv", cfg.Pipeline.LedgerPath)
	assert.Equal(t, []string{"Google"}, cfg.Pipeline.Companies)
	assert.Equal(t, "none", cfg.Pipeline.Dedup)
	assert.Equal(t, "accept", cfg.Pipeline.ScorePolicy)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_CompanyList(t *testing.T) {
	t.Setenv("COMPANIES", " Google, Amazon ,,Apple")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Google", "Amazon", "Apple"}, cfg.Pipeline.Companies)
}

func TestValidate_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Key)
}

func TestValidate_UnknownPolicy(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JOBS_DEDUP", "company")

	cfg, err := Load()
	require.NoError(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "JOBS_DEDUP", cfgErr.Key)
}
