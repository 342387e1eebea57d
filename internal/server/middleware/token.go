package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// IssueToken signs an HS256 session token for the given user.
func IssueToken(secret []byte, user AppUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.UserID, 10),
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// userFromClaims rebuilds the session user from verified token claims. The
// sub claim may be a numeric string (our own tokens) or a JSON number
// (external issuers).
func userFromClaims(claims jwt.MapClaims) (*AppUser, error) {
	var userID int64
	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sub claim: %w", err)
		}
		userID = id
	case float64:
		userID = int64(sub)
	default:
		return nil, fmt.Errorf("missing sub claim")
	}

	user := &AppUser{UserID: userID, Role: "user"}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}
