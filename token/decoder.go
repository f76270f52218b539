package token

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

// UnverifiedDecoder reads the payload without checking the signature. The API
// that issued the token is the one that verifies it on every call.
type UnverifiedDecoder struct{}

var _ Decoder = UnverifiedDecoder{}

func (UnverifiedDecoder) Decode(_ context.Context, rawIDToken string) (Claims, error) {
	if strings.TrimSpace(rawIDToken) == "" {
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[token Decode] empty token")
	}

	tok, _, err := jwtlib.NewParser().ParseUnverified(rawIDToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[token Decode] %v", err)
	}

	mapClaims, ok := tok.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[token Decode] error extracting claims")
	}
	return claimsFromMap(mapClaims), nil
}

// OIDCVerifier checks the id token signature, issuer and audience against the
// issuer's discovery document. The provider is discovered on first use.
type OIDCVerifier struct {
	issuer   string
	clientID string

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

var _ Decoder = (*OIDCVerifier)(nil)

func NewOIDCVerifier(issuer, clientID string) *OIDCVerifier {
	return &OIDCVerifier{issuer: issuer, clientID: clientID}
}

func (v *OIDCVerifier) getVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.verifier != nil {
		return v.verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, v.issuer)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[token OIDCVerifier] discover %s", v.issuer)
	}
	v.verifier = provider.Verifier(&oidc.Config{
		ClientID:          v.clientID,
		SkipClientIDCheck: v.clientID == "",
	})
	return v.verifier, nil
}

func (v *OIDCVerifier) Decode(ctx context.Context, rawIDToken string) (Claims, error) {
	verifier, err := v.getVerifier(ctx)
	if err != nil {
		return Claims{}, err
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return Claims{}, apperrors.Wrapf(apperrors.ErrSessionExpired, "[token OIDCVerifier] %v", err)
		}
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[token OIDCVerifier] %v", err)
	}

	var raw map[string]any
	if err := idToken.Claims(&raw); err != nil {
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[token OIDCVerifier] claims: %v", err)
	}
	return claimsFromMap(raw), nil
}

// NewDecoder verifies tokens when an issuer is configured and only decodes them otherwise
func NewDecoder(issuer, clientID string) Decoder {
	if issuer == "" {
		return UnverifiedDecoder{}
	}
	return NewOIDCVerifier(issuer, clientID)
}
