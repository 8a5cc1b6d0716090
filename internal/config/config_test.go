package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultRefresh, cfg.RefreshInterval())
	assert.Equal(t, DefaultLookback, cfg.LookbackWindow())
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeoutDuration())
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "text", cfg.Output)
	assert.Empty(t, cfg.Groups)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultRefresh, cfg.RefreshInterval())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultLookback, cfg.LookbackWindow())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
region = "us-east-1"
refresh = "5s"
lookback = "30m"
no_color = true
stream_prefix = "prod-"
groups = ["api-logs", "worker-logs"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval())
	assert.Equal(t, 30*time.Minute, cfg.LookbackWindow())
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "prod-", cfg.StreamPrefix)
	assert.Equal(t, []string{"api-logs", "worker-logs"}, cfg.Groups)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeoutDuration())
	assert.Equal(t, "Local", cfg.Timezone)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("region = ["), 0644))

	cfg, err := Load(path)

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDurationFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		refresh string
		want    time.Duration
	}{
		{name: "valid", refresh: "2m", want: 2 * time.Minute},
		{name: "empty", refresh: "", want: DefaultRefresh},
		{name: "malformed", refresh: "soon", want: DefaultRefresh},
		{name: "negative", refresh: "-5s", want: DefaultRefresh},
		{name: "zero", refresh: "0s", want: DefaultRefresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Refresh: tt.refresh}
			assert.Equal(t, tt.want, cfg.RefreshInterval())
		})
	}
}
