// Package token reads the identity claims carried by the user's id token.
package token

import (
	"context"

	"github.com/jrsteele09/captal-web/internal/utils"
	"github.com/rs/zerolog/log"
)

// Claim names read from the id token
const (
	ClaimSub    = "sub"
	ClaimName   = "name"
	ClaimEmail  = "email"
	ClaimRole   = "custom:role"
	ClaimUserID = "custom:userId"
	ClaimGroups = "cognito:groups"

	RoleAdmin = "admin"

	fallbackName = "User"
)

// Claims is the user identity derived from the id token. It is never stored.
type Claims struct {
	Sub    string
	Name   string
	Email  string
	Role   string
	UserID string
	Groups []string
}

// Fallback is the identity shown when the id token cannot be read
func Fallback() Claims {
	return Claims{Name: fallbackName}
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// HasRole is true once the role claim is known
func (c Claims) HasRole() bool {
	return c.Role != ""
}

func claimsFromMap(m map[string]any) Claims {
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	c := Claims{
		Sub:    str(ClaimSub),
		Name:   str(ClaimName),
		Email:  str(ClaimEmail),
		Role:   str(ClaimRole),
		UserID: str(ClaimUserID),
	}
	c.Groups = utils.StringList(m[ClaimGroups])
	return c
}

// Decoder turns a raw id token into claims
type Decoder interface {
	Decode(ctx context.Context, rawIDToken string) (Claims, error)
}

// ClaimsOrDefault decodes rawIDToken and falls back to {Name: "User"} on any failure
func ClaimsOrDefault(ctx context.Context, d Decoder, rawIDToken string) Claims {
	if rawIDToken == "" {
		return Fallback()
	}
	claims, err := d.Decode(ctx, rawIDToken)
	if err != nil {
		log.Debug().Err(err).Msg("id token could not be decoded")
		return Fallback()
	}
	if claims.Name == "" {
		claims.Name = fallbackName
	}
	return claims
}
