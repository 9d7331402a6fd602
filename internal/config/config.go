package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func (s *SettingsType) GetInt(id string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s.Get(id)))
	if err != nil {
		return def
	}
	return v
}

func (s *SettingsType) GetFloat(id string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s.Get(id)), 64)
	if err != nil {
		return def
	}
	return v
}

func (s *SettingsType) GetDuration(id string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(s.Get(id)))
	if err != nil {
		return def
	}
	return v
}

// LogLevel falls back to info on unknown values.
func (s *SettingsType) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s.Get(LOG_LEVEL))))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
