package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr string
	}{
		{"missing", "", "ENV_SCHEMA_VERSION is not set"},
		{"stale", "0.9", "expected 1.0, got 0.9"},
		{"current", ExpectedEnvSchemaVersion, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			if tt.version != "" {
				t.Setenv("ENV_SCHEMA_VERSION", tt.version)
			}

			err := ValidateEnv()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_PostgresNeedsCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.DBUser = ""
	cfg.DBName = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER must be set")
	assert.Contains(t, err.Error(), "DB_NAME must be set")

	cfg.StoreDriver = StoreDriverSQLite
	assert.NoError(t, cfg.Validate(), "sqlite ignores database credentials")
}

func TestValidate_SessionOutlivesTick(t *testing.T) {
	cfg := validConfig()
	cfg.SessionIdleTimeout = cfg.TickInterval

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_IDLE_TIMEOUT must be longer than TICK_INTERVAL")
}

func TestWarnings(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")

	cfg := validConfig()
	cfg.StoreDriver = StoreDriverSQLite
	cfg.SQLitePath = ":memory:"
	cfg.MaxOfflineHours = 72

	warnings := cfg.Warnings()

	require.Len(t, warnings, 5)
	assert.Contains(t, warnings[0], "API_KEY")
	assert.Contains(t, warnings[1], "DB_PASSWORD")
	assert.Contains(t, warnings[2], "GEMINI_API_KEY")
	assert.Contains(t, warnings[3], ":memory:")
	assert.Contains(t, warnings[4], "MAX_OFFLINE_HOURS=72")
}

func TestWarnings_CleanConfig(t *testing.T) {
	clearEnvVars(t)
	cfg := validConfig()
	cfg.GeminiAPIKey = "key"

	assert.Empty(t, cfg.Warnings())
}
