package config

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	CorsConfig
	OIDCConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	API
	Session
	Cors
	OIDC
}

func New() Config {
	return mainConfig{}
}
