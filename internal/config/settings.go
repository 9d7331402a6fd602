package config

import (
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
)

type SettingsType struct {
	m map[string]SettingType
}

type SettingType struct {
	Description string
	Value       string
}

func NewSettingType(print bool) *SettingsType {
	s := &SettingsType{m: make(map[string]SettingType)}

	s.Set(SERVER_URL, "Base url of the identity service", "")
	s.Set(LISTEN_ADDR, "Server listen address", ":8080")
	s.Set(IDENTITY_BACKEND, "Identity backend, http or ldap", BackendHTTP)
	s.Set(LDAP_URL, "LDAP server url", "ldaps://ldap:389")
	s.Set(LDAP_BASE_DN, "LDAP base DN", "dc=glauth,dc=com")
	s.Set(LDAP_USER_FILTER, "LDAP user filter", "(mail=%s)")
	s.Set(LDAP_USER_DOMAIN, "LDAP user mail domain", "@example.com")
	s.Set(LDAP_BIND_FORMAT, "LDAP bind DN format, empty binds with the mail address", "")
	s.Set(LDAP_STARTTLS, "Use StartTLS when connecting to LDAP", "false")
	s.Set(LDAP_SKIP_TLS_VERIFY, "Skip TLS verification when connecting to LDAP", "false")
	s.Set(TLS_ENABLED, "Serve HTTPS with a self signed certificate if none exists", "false")
	s.Set(TLS_CERT_FILE, "TLS certificate path", "certs/server.crt")
	s.Set(TLS_KEY_FILE, "TLS key path", "certs/server.key")
	s.Set(SESSION_COOKIE_SECURE, "Mark the session cookie secure", "false")
	s.Set(LOG_LEVEL, "zerolog level", "info")
	s.Set(LOG_FORMAT, "Log format, json or console", "json")
	s.Set(LOGIN_RATE_LIMIT, "Login submissions per second per client ip", "3")
	s.Set(LOGIN_RATE_BURST, "Login submission burst per client ip", "5")
	s.Set(HEALTH_CACHE_TTL, "How long an identity readiness result is reused", "15s")

	// The front-end historically read its base url from the Next.js public variable.
	if !s.Has(SERVER_URL) {
		if v, ok := os.LookupEnv(NEXT_PUBLIC_SERVER_URL); ok {
			s.m[SERVER_URL] = SettingType{Description: s.m[SERVER_URL].Description, Value: v}
		}
	}

	if print {
		table := tablewriter.NewWriter(os.Stdout)

		table.Header("KEY", "Description", "value")
		for _, key := range s.Keys() {
			setting := s.m[key]
			table.Append([]string{key, setting.Description, setting.Value})
		}
		table.Render()
	}
	return s
}

func (s *SettingsType) Get(id string) string {
	return s.m[id].Value
}

func (s *SettingsType) Has(id string) bool {
	return len(s.m[id].Value) > 0
}

func (s *SettingsType) IsTrue(id string) bool {
	return s.m[id].Value == "true"
}

func (s *SettingsType) Set(id string, description string, defaultValue string) {
	if value, ok := os.LookupEnv(id); ok {
		s.m[id] = SettingType{Description: description, Value: value}
	} else {
		s.m[id] = SettingType{Description: description, Value: defaultValue}
	}
}

// Keys returns the registered keys in a stable order.
func (s *SettingsType) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for key := range s.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

const (
	BackendHTTP = "http"
	BackendLDAP = "ldap"
)

const (
	SERVER_URL             = "SERVER_URL"
	NEXT_PUBLIC_SERVER_URL = "NEXT_PUBLIC_SERVER_URL"
	LISTEN_ADDR            = "LISTEN_ADDR"
	IDENTITY_BACKEND       = "IDENTITY_BACKEND"
	LDAP_URL               = "LDAP_URL"
	LDAP_BASE_DN           = "LDAP_BASE_DN"
	LDAP_USER_FILTER       = "LDAP_USER_FILTER"
	LDAP_USER_DOMAIN       = "LDAP_USER_DOMAIN"
	LDAP_BIND_FORMAT       = "LDAP_BIND_FORMAT"
	LDAP_STARTTLS          = "LDAP_STARTTLS"
	LDAP_SKIP_TLS_VERIFY   = "LDAP_SKIP_TLS_VERIFY"
	TLS_ENABLED            = "TLS_ENABLED"
	TLS_CERT_FILE          = "TLS_CERT_FILE"
	TLS_KEY_FILE           = "TLS_KEY_FILE"
	SESSION_COOKIE_SECURE  = "SESSION_COOKIE_SECURE"
	LOG_LEVEL              = "LOG_LEVEL"
	LOG_FORMAT             = "LOG_FORMAT"
	LOGIN_RATE_LIMIT       = "LOGIN_RATE_LIMIT"
	LOGIN_RATE_BURST       = "LOGIN_RATE_BURST"
	HEALTH_CACHE_TTL       = "HEALTH_CACHE_TTL"
)
