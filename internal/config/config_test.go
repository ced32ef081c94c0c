package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		UI:      UIConfig{Host: "127.0.0.1", Port: 5173, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Upload:  UploadConfig{MaxFileSize: 1024},
		Remote:  RemoteConfig{Timeout: time.Second, MaxConcurrent: 4},
		Load:    LoadConfig{MaxConcurrent: 2, MaxWaitTime: time.Second},
		Export:  ExportConfig{DefaultLayout: "embedded", StatusTTL: time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.UI.Host)
	assert.Equal(t, 5173, cfg.UI.Port)
	assert.EqualValues(t, 10485760, cfg.Upload.MaxFileSize)
	assert.Equal(t, 0, cfg.Remote.RetryCount)
	assert.Equal(t, 4, cfg.Remote.MaxConcurrent)
	assert.Equal(t, "embedded", cfg.Export.DefaultLayout)
	assert.Equal(t, 2500*time.Millisecond, cfg.Export.StatusTTL)
	assert.True(t, cfg.UI.EnableCSP, "UI.EnableCSP should default to true")
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("UI_PORT", "9090")
	t.Setenv("REMOTE_BASE_URL", "https://org.example.com/api/data/v9.2")
	t.Setenv("REMOTE_RETRY_COUNT", "2")
	t.Setenv("EXPORT_DEFAULT_LAYOUT", "separate")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.UI.Port)
	assert.Equal(t, "https://org.example.com/api/data/v9.2", cfg.Remote.BaseURL)
	assert.Equal(t, 2, cfg.Remote.RetryCount)
	assert.Equal(t, "separate", cfg.Export.DefaultLayout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("REMOTE_TOKEN", "")
	t.Setenv("API_TOKEN", "alt-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "alt-token", cfg.Remote.Token)
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT", "45s")
	t.Setenv("LOAD_MAX_WAIT_TIME", "1m30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Load.MaxWaitTime)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("UI_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UI_PORT")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.UI.Port = 99999

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UI_PORT")
}

func TestValidate_RemoteBaseURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"", false},
		{"https://org.crm.dynamics.com/api/data/v9.2", false},
		{"http://localhost:8080", false},
		{"ftp://example.com", true},
		{"/relative/path", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := validConfig()
			cfg.Remote.BaseURL = tt.url
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Remote.RetryCount = -1
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_RETRY_COUNT")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestUIAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 5173, ":5173"},
		{"127.0.0.1", 5173, "127.0.0.1:5173"},
		{"localhost", 443, "localhost:443"},
		{"::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		cfg := &UIConfig{Host: tt.host, Port: tt.port}
		assert.Equal(t, tt.want, cfg.Addr(), "host=%q port=%d", tt.host, tt.port)
	}
}

func TestConfigString_MasksToken(t *testing.T) {
	cfg := validConfig()
	cfg.Remote.Token = "super-secret-token"

	str := cfg.String()
	assert.NotContains(t, str, "super-secret-token")
	assert.Contains(t, str, "MASKED")
}
