package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewSettingTypeDefaults(t *testing.T) {
	t.Setenv(SERVER_URL, "")
	s := NewSettingType(false)

	assert.Equal(t, ":8080", s.Get(LISTEN_ADDR))
	assert.Equal(t, BackendHTTP, s.Get(IDENTITY_BACKEND))
	assert.False(t, s.IsTrue(TLS_ENABLED))
	assert.False(t, s.Has(SERVER_URL))
	assert.Equal(t, 5, s.GetInt(LOGIN_RATE_BURST, 0))
	assert.Equal(t, 15*time.Second, s.GetDuration(HEALTH_CACHE_TTL, 0))
}

func TestNewSettingTypeEnvOverride(t *testing.T) {
	t.Setenv(SERVER_URL, "http://gateway:8080")
	t.Setenv(TLS_ENABLED, "true")
	t.Setenv(LOGIN_RATE_LIMIT, "0.5")
	s := NewSettingType(false)

	assert.Equal(t, "http://gateway:8080", s.Get(SERVER_URL))
	assert.True(t, s.IsTrue(TLS_ENABLED))
	assert.Equal(t, 0.5, s.GetFloat(LOGIN_RATE_LIMIT, 3))
}

func TestNewSettingTypeNextPublicFallback(t *testing.T) {
	t.Setenv(SERVER_URL, "")
	t.Setenv(NEXT_PUBLIC_SERVER_URL, "http://legacy:8000")
	s := NewSettingType(false)

	assert.Equal(t, "http://legacy:8000", s.Get(SERVER_URL))
}

func TestNewSettingTypeServerURLWins(t *testing.T) {
	t.Setenv(SERVER_URL, "http://primary")
	t.Setenv(NEXT_PUBLIC_SERVER_URL, "http://legacy")
	s := NewSettingType(false)

	assert.Equal(t, "http://primary", s.Get(SERVER_URL))
}

func TestParseHelpersFallBack(t *testing.T) {
	t.Setenv(LOGIN_RATE_BURST, "many")
	t.Setenv(HEALTH_CACHE_TTL, "soon")
	t.Setenv(LOG_LEVEL, "chatty")
	s := NewSettingType(false)

	assert.Equal(t, 7, s.GetInt(LOGIN_RATE_BURST, 7))
	assert.Equal(t, time.Minute, s.GetDuration(HEALTH_CACHE_TTL, time.Minute))
	assert.Equal(t, zerolog.InfoLevel, s.LogLevel())
}

func TestLogLevel(t *testing.T) {
	t.Setenv(LOG_LEVEL, "DEBUG")
	s := NewSettingType(false)
	assert.Equal(t, zerolog.DebugLevel, s.LogLevel())
}

func TestKeysSorted(t *testing.T) {
	s := NewSettingType(false)
	keys := s.Keys()
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, SERVER_URL)
}
