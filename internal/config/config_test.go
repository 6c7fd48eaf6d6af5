package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
service:
  name: mindtrack-api
http:
  port: 8080
  read_timeout: 10s
jwt:
  secret: ${TEST_JWT_SECRET:from-default}
reports:
  timezone: America/Sao_Paulo
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("REPORTS_TIMEZONE", "")

	cfg, err := LoadFile(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "mindtrack-api", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "from-default", cfg.JWT.Secret)
	assert.Equal(t, 7, cfg.Reports.DashboardDays)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Reports.Location().String())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "expanded")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("REPORTS_TIMEZONE", "UTC")

	cfg, err := LoadFile(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "expanded", cfg.JWT.Secret)
	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, time.UTC, cfg.Reports.Location())
}

func TestValidate(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "jwt:\n  secret: x\nreports:\n  timezone: Mars/Olympus\n"))
	assert.ErrorContains(t, err, "reports.timezone")

	t.Setenv("JWT_SECRET", "")
	_, err = LoadFile(writeConfig(t, "service:\n  name: x\n"))
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Database: "mt", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/mt?sslmode=disable", db.GetDSN())
}
