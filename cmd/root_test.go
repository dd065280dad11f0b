package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_spider/internal/config"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	assert.Equal(t, "portfolio-spider", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"config", "start-url", "max-requests", "follow-internal-only", "db-driver", "db-path", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "config.yaml", cmd.Flags().Lookup("config").DefValue)
	assert.Equal(t, "true", cmd.Flags().Lookup("follow-internal-only").DefValue)
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	defaults := func(t *testing.T) *config.SpiderConfig {
		t.Helper()
		cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	t.Run("unset flags keep config values", func(t *testing.T) {
		t.Parallel()

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags(nil))

		cfg := defaults(t)
		require.NoError(t, applyFlags(cmd, cfg))

		assert.Equal(t, []string{config.DefaultStartURL}, cfg.Input.StartURLs)
		assert.Equal(t, config.DefaultMaxRequestsPerCrawl, cfg.Input.MaxRequestsPerCrawl)
		assert.Nil(t, cfg.Input.FollowInternalOnly)
		assert.Equal(t, config.DefaultSQLitePath, cfg.DB.Path)
	})

	t.Run("set flags override config", func(t *testing.T) {
		t.Parallel()

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--start-url", "https://vc.example/portfolio",
			"-u", "https://vc.example/team",
			"--max-requests", "10",
			"--follow-internal-only=false",
			"--db-path", "crawl.db",
		}))

		cfg := defaults(t)
		require.NoError(t, applyFlags(cmd, cfg))

		assert.Equal(t, []string{"https://vc.example/portfolio", "https://vc.example/team"}, cfg.Input.StartURLs)
		assert.Equal(t, 10, cfg.Input.MaxRequestsPerCrawl)
		assert.False(t, cfg.Input.FollowInternal())
		assert.Equal(t, "crawl.db", cfg.DB.Path)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid override fails validation", func(t *testing.T) {
		t.Parallel()

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--db-driver", "mongo"}))

		cfg := defaults(t)
		require.NoError(t, applyFlags(cmd, cfg))

		assert.ErrorIs(t, cfg.Validate(), config.ErrNoConnection)
	})
}
