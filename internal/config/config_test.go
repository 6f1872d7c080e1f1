package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []int{5, 10, 20, 50}, cfg.Dataset.RankLimits)
	assert.Equal(t, 10, cfg.Dataset.DefaultRankLimit)
	assert.Equal(t, "./data/movieboard.db", cfg.Database.Path)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdirTemp(t)

	t.Setenv("API_PORT", "9090")
	t.Setenv("DATASET_PATH", "/srv/movies.csv")
	t.Setenv("DATASET_WATCH", "true")
	t.Setenv("RANK_LIMITS", "10, 25,50")
	t.Setenv("DEFAULT_RANK_LIMIT", "25")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/movies.csv", cfg.Dataset.Path)
	assert.True(t, cfg.Dataset.Watch)
	assert.Equal(t, []int{10, 25, 50}, cfg.Dataset.RankLimits)
	assert.Equal(t, 25, cfg.Dataset.DefaultRankLimit)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := []byte(`
server:
  port: "7000"
dataset:
  path: /data/films.csv
  rank_limits: [10, 50]
  default_rank_limit: 50
`)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "/data/films.csv", cfg.Dataset.Path)
	assert.Equal(t, []int{10, 50}, cfg.Dataset.RankLimits)
	assert.Equal(t, 50, cfg.Dataset.DefaultRankLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "default rank limit outside the set",
			mutate:  func(c *Config) { c.Dataset.DefaultRankLimit = 7 },
			wantErr: true,
		},
		{
			name:    "empty rank limit set",
			mutate:  func(c *Config) { c.Dataset.RankLimits = nil },
			wantErr: true,
		},
		{
			name:    "non-positive rank limit",
			mutate:  func(c *Config) { c.Dataset.RankLimits = []int{0, 10} },
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Server.Port = "http" },
			wantErr: true,
		},
		{
			name: "production with default secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
			},
			wantErr: true,
		},
		{
			name: "production with custom secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "s3cret"
			},
			wantErr: false,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
