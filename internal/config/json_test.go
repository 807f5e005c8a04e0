package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_issuer": "test_issuer",
			"token_duration": "24h",
			"password_hash_cost": 11,
			"reset_token_ttl": "30m",
			"frontend_url": "https://shop.example.com",
			"environment": "staging",
			"version": "3.0.0",
			"allowed_origins": ["https://admin.example.com"]
		},
		"server": {
			"http_address": "localhost:8080",
			"grpc_address": "localhost:9090",
			"request_timeout": "30s"
		},
		"storage": {
			"db": { "dsn": "file:warehouse.db" },
			"images": { "bucket": "products", "region": "eu-west-1", "max_size": 2048 }
		},
		"mail": {
			"transport": "http",
			"sender": "noreply@example.com",
			"relay_url": "https://relay.example.com",
			"timeout": 5000000000
		},
		"workers": {
			"token_cleanup_interval": "1m"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 11, cfg.App.PasswordHashCost)
	assert.Equal(t, 30*time.Minute, cfg.App.ResetTokenTTL)
	assert.Equal(t, "https://shop.example.com", cfg.App.FrontendURL)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "3.0.0", cfg.App.Version)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.App.AllowedOrigins)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "file:warehouse.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "products", cfg.Storage.Images.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.Images.Region)
	assert.Equal(t, int64(2048), cfg.Storage.Images.MaxSize)

	assert.Equal(t, MailTransportHTTP, cfg.Mail.Transport)
	assert.Equal(t, "https://relay.example.com", cfg.Mail.RelayURL)
	assert.Equal(t, 5*time.Second, cfg.Mail.Timeout)

	assert.Equal(t, time.Minute, cfg.Workers.TokenCleanupInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"token_duration": "one day"}}`), 0o600))

	_, err := parseJSON(p)

	require.Error(t, err)
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	in := Duration(90 * time.Minute)

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"1h30m0s"`, string(data))

	var out Duration
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
