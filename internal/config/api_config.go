package config

import "time"

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL is the root of the external REST API every service talks to
func (API) GetAPIBaseURL() string {
	return GetEnv("API_URL", "http://localhost:3000")
}

// GetAPITimeout is zero unless configured, leaving the transport default in place
func (API) GetAPITimeout() time.Duration {
	return GetEnvDuration("API_TIMEOUT", 0)
}
