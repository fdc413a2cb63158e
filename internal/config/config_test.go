package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "API_URL", "PUBLIC_API_URL", "BACKEND_TIMEOUT", "TIMEZONE",
		"REPORT_CRON_SCHEDULE", "MONGODB_URI", "MONGODB_DB_NAME",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_REPORT_RANGE",
		"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION", "WHATSAPP_DIGEST_TO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://localhost:8000/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "0 20 * * 0", cfg.Reporting.CronSchedule)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "PUBLIC_API_URL=http://backend:8000\nAPP_PORT=9090\nBACKEND_TIMEOUT=3s\nMONGODB_URI=mongodb://localhost:27017\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// godotenv does not override variables that already exist.
	for _, key := range []string{"PUBLIC_API_URL", "APP_PORT", "BACKEND_TIMEOUT", "MONGODB_URI"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.MongoDB.Enabled())
	assert.Equal(t, "ecolog", cfg.MongoDB.DBName)
}

func TestLoadRequiresBackendURL(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_URL")
}

func TestLoadRejectsDivergentBackendURLs(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://a:8000")
	t.Setenv("PUBLIC_API_URL", "http://b:8000")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same backend")
}

func TestLoadAcceptsMatchingBackendURLs(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://a:8000")
	t.Setenv("PUBLIC_API_URL", "http://a:8000/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://a:8000", cfg.Backend.BaseURL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Backend:   BackendConfig{BaseURL: "http://localhost:8000", Timeout: time.Second},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 0", Timezone: "UTC"},
		}
	}

	require.NoError(t, valid().Validate())

	var nilCfg *Config
	require.Error(t, nilCfg.Validate())

	cfg := valid()
	cfg.Reporting.Timezone = "Mars/Olympus"
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Backend.Timeout = 0
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.WhatsApp = WhatsAppConfig{AccessToken: "t", PhoneNumberID: "p", DigestTo: "1"}
	require.Error(t, cfg.Validate())
}
