package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: sqlite
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)
	require.NoError(t, LoadConfig(path))

	assert.Equal(t, 8080, AppConfig.Backend.Port)
	assert.Equal(t, "besties.db", AppConfig.Databases.SQLitePath)
	assert.Equal(t, "social_events", AppConfig.RabbitMQ.Exchange)
	assert.Equal(t, 10*time.Minute, AppConfig.Redis.CardTTL)
	assert.Equal(t, []string{"http://localhost:4200"}, AppConfig.Cors.AllowedOrigins)
}

func TestLoadConfigEnvOverridesSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "ffffffffffffffffffffffffffffffffffff")
	path := writeConfig(t, `
store:
  driver: sqlite
auth:
  jwt_secret: short
`)
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "ffffffffffffffffffffffffffffffffffff", AppConfig.Auth.JWTSecret)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"postgres without host": `
store:
  driver: postgres
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`,
		"unknown driver": `
store:
  driver: cassandra
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`,
		"short secret": `
store:
  driver: sqlite
auth:
  jwt_secret: tiny
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, LoadConfig(writeConfig(t, body)))
		})
	}
}
