package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "campus-report-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)

	assert.Equal(t, 3, cfg.Report.DailyLimit)
	assert.Equal(t, "utp.edu.pe", cfg.Report.EmailDomain)

	assert.Equal(t, 3, cfg.DangerZone.Threshold)
	assert.Equal(t, 24*time.Hour, cfg.DangerZone.Window())

	assert.Equal(t, "campus:alerts", cfg.Notification.BroadcastChannel)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("REPORT_DAILY_LIMIT", "5")
	t.Setenv("DANGER_ZONE_WINDOW_HOURS", "48")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Report.DailyLimit)
	assert.Equal(t, 48*time.Hour, cfg.DangerZone.Window())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "postgres://localhost/reports", cfg.Postgres.DSN)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("REPORT_DAILY_LIMIT", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)
}
