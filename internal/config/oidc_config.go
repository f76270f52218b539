package config

type OIDCConfig interface {
	GetOIDCIssuerURL() string
	GetOIDCClientID() string
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

// GetOIDCIssuerURL turns on id-token signature verification when set
// (e.g., "https://cognito-idp.sa-east-1.amazonaws.com/sa-east-1_XXXX")
func (OIDC) GetOIDCIssuerURL() string {
	return GetEnv("OIDC_ISSUER_URL", "")
}

func (OIDC) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}
