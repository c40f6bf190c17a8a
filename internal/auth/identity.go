package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated account as derived from the access token.
// It is recomputed from the token whenever the credential changes, never
// cached independently of it.
type Identity struct {
	ID    string
	Email string
}

// DecodeIdentity extracts the identity from an access token's claims.
// Signature verification is the server's job; the client only reads the
// subject (and email claim when present) to know who it is acting as.
func DecodeIdentity(accessToken string) (*Identity, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("access token has no subject claim")
	}

	id := &Identity{ID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
