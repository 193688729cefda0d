// Package token decodes access token payloads into display identities.
//
// Decoding is local and non-cryptographic: neither the signature nor
// the expiry is validated. The result is a UI convenience only and
// must never be used as an authorization check.
package token

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atinyakov/RealtyClient/internal/models"
)

// Decode extracts the display identity from the payload of an access
// token. It fails when the token is malformed: wrong segment count,
// invalid base64 encoding, or an invalid JSON payload. The "sub" and
// "username" claims are optional display fields; when absent the
// corresponding identity field is left empty.
func Decode(raw string) (models.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return models.Identity{}, fmt.Errorf("decode access token: %w", err)
	}

	var identity models.Identity
	switch sub := claims["sub"].(type) {
	case string:
		identity.ID = sub
	case float64:
		// Some backends issue numeric subjects.
		identity.ID = strconv.FormatInt(int64(sub), 10)
	}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}
	return identity, nil
}

// IdentityOrNil wraps Decode and returns nil on any decode failure.
// This is the only entry point other packages use.
func IdentityOrNil(raw string) *models.Identity {
	identity, err := Decode(raw)
	if err != nil {
		return nil
	}
	return &identity
}
