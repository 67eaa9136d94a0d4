package auth

import (
	"fmt"
	"time"

	apperrors "chat-relay/errors"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
// The relay only verifies tokens; issuance belongs to the external
// authentication service, which signs with the same shared secret.
type CustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Verifier validates bearer credentials against the shared secret.
// Verification is a pure function of (token, secret, clock): it performs
// no I/O, so it is cheap enough to sit on the hot path of every handler.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: []byte(secret)}
}

// Verify parses and validates signature and expiry, returning the bound
// user id. Every failure collapses to ErrUnauthorized: callers must treat
// it as fail-closed and terminate the transport.
func (v Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.UserID, nil
}

// GenerateToken creates a signed JWT for a specific user. The relay never
// calls this in production; it exists for tooling and tests that need a
// credential accepted by Verify.
func GenerateToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "chat-relay",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
