package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	baseURLVar    = "BASE_URL"
	environment   = "ENV"
	defaultAppEnv = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Captal")
}

// GetBaseURL returns the public URL the front end is served from (e.g., "https://app.captal.com.br")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetEnv() string {
	return GetEnv(environment, defaultAppEnv)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool parses a boolean variable, falling back to defaultValue when unset or malformed
func GetEnvBool(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvDuration accepts Go durations ("90s", "30m") or a bare number of seconds
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
