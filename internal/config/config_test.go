package config

import (
	"os"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOADER_API_URL", "http://grants.local")
	t.Setenv("UPLOADER_RESET_DELAY", "1500ms")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "http://grants.local", cfg.Uploader.APIURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Uploader.ResetDelay)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPLOADER_RESET_DELAY", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("UPLOAD_BODY_LIMIT_MB", "")
	t.Setenv("DB_CONNECT_TIMEOUT_SEC", "")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Uploader.ResetDelay)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 100, cfg.BodyLimitMB)
	assert.Equal(t, 30, cfg.Database.ConnectTimeoutSec)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Kathmandu"}
	assert.Equal(t, "Asia/Kathmandu", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	os.Setenv(key, "2s")
	assert.Equal(t, 2*time.Second, getEnvDuration(key, 0))

	os.Setenv(key, "soon")
	assert.Equal(t, time.Minute, getEnvDuration(key, time.Minute))

	os.Unsetenv(key)
	assert.Equal(t, time.Minute, getEnvDuration(key, time.Minute))
}
