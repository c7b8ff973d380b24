package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_CHECK", "1")
	t.Setenv("SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3005", cfg.Port)
	assert.True(t, cfg.JWTVerify)
	assert.Equal(t, "smtp.gmail.com", cfg.MailHost)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, "@every 10s", cfg.OutboxSchedule)
	assert.Equal(t, 5, cfg.OutboxMaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.CourseCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV_CHECK", "1")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_VERIFY", "false")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COURSE_CACHE_TTL", "30s")
	t.Setenv("OUTBOX_WORKER", "nope")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.JWTVerify)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.CourseCacheTTL)
	assert.True(t, cfg.OutboxWorker, "unparseable bool falls back to default")
}

func TestLoadRequiresSecretWhenVerifying(t *testing.T) {
	t.Setenv("ENV_CHECK", "1")
	t.Setenv("JWT_VERIFY", "true")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "isml", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=isml sslmode=disable", cfg.DSN())
}
