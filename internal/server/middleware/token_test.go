package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	in := AppUser{UserID: 7, Email: "test@example.com", Name: "Test User", Role: "admin"}

	token, err := IssueToken(secret, in)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	parsed, err := jwt.Parse(token, hmacKeyfunc(secret))
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v (valid=%v)", err, parsed != nil && parsed.Valid)
	}
	out, err := userFromClaims(parsed.Claims.(jwt.MapClaims))
	if err != nil {
		t.Fatalf("userFromClaims: %v", err)
	}
	if *out != in {
		t.Fatalf("round trip = %+v, want %+v", *out, in)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("right"), AppUser{UserID: 1, Role: "user"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := jwt.Parse(token, hmacKeyfunc([]byte("wrong"))); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestUserFromClaimsNumericSub(t *testing.T) {
	// External issuers may encode sub as a JSON number.
	user, err := userFromClaims(jwt.MapClaims{"sub": float64(42), "role": "user"})
	if err != nil {
		t.Fatalf("userFromClaims: %v", err)
	}
	if user.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", user.UserID)
	}

	if _, err := userFromClaims(jwt.MapClaims{"email": "no-sub@example.com"}); err == nil {
		t.Fatal("missing sub accepted")
	}
}
