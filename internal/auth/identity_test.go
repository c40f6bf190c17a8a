package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// makeToken signs an HS256 token with the given claims. The signature is
// irrelevant to decoding; it just has to be structurally valid.
func makeToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeIdentity(t *testing.T) {
	access := makeToken(t, jwt.MapClaims{"sub": "user-42", "email": "a@b.c"})

	id, err := DecodeIdentity(access)
	if err != nil {
		t.Fatalf("DecodeIdentity() error = %v", err)
	}
	if id.ID != "user-42" {
		t.Errorf("ID = %q, want %q", id.ID, "user-42")
	}
	if id.Email != "a@b.c" {
		t.Errorf("Email = %q, want %q", id.Email, "a@b.c")
	}
}

func TestDecodeIdentityWithoutEmailClaim(t *testing.T) {
	access := makeToken(t, jwt.MapClaims{"sub": "user-42"})

	id, err := DecodeIdentity(access)
	if err != nil {
		t.Fatalf("DecodeIdentity() error = %v", err)
	}
	if id.ID != "user-42" || id.Email != "" {
		t.Errorf("identity = %+v, want ID only", id)
	}
}

func TestDecodeIdentityMissingSubject(t *testing.T) {
	access := makeToken(t, jwt.MapClaims{"email": "a@b.c"})

	if _, err := DecodeIdentity(access); err == nil {
		t.Error("DecodeIdentity() error = nil, want missing-subject error")
	}
}

func TestDecodeIdentityGarbage(t *testing.T) {
	if _, err := DecodeIdentity("not-a-token"); err == nil {
		t.Error("DecodeIdentity() error = nil, want parse error")
	}
}
