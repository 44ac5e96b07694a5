package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, "session_id", cfg.Session.CookieName)
	require.Equal(t, 72*time.Hour, cfg.Session.TTL)
	require.False(t, cfg.Session.CookieSecure)
	require.Equal(t, "http://localhost:5173", cfg.Frontend.Origin)
	require.Equal(t, "http://localhost:5173/home", cfg.Frontend.HomeURL)
	require.Equal(t, "http://localhost:5173/login", cfg.Frontend.LoginURL)
	require.False(t, cfg.Email.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("FRONTEND_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
	require.True(t, cfg.Session.CookieSecure)
	require.Equal(t, "https://app.example.com", cfg.Frontend.Origin)
	require.Equal(t, "https://app.example.com/home", cfg.Frontend.HomeURL)
}

func TestLoad_GoogleRequiresStateSecret(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("OAUTH_STATE_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("OAUTH_STATE_SECRET", "some-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "client-id", cfg.Google.ClientID)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "catalog", SSLMode: "disable",
	}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", db.DSN())
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: "6379"}
	require.Equal(t, "cache:6379", r.Addr())
}
