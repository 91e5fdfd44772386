package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// IdentityExpiration defines the validity window used when the development
	// token mint issues identity tokens. Production tokens come from the
	// identity provider with its own lifetimes.
	IdentityExpiration = 24 * time.Hour

	// TokenIssuer identifies tokens minted by the development mint.
	TokenIssuer = "learnloop-dev"
)

// GenerateToken creates and signs a JWT for the given Payload. It exists for
// the development environment and tests; real deployments receive tokens from
// the identity provider.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	payload.StandardClaims.ExpiresAt = now.Add(duration).Unix()
	payload.StandardClaims.IssuedAt = now.Unix()
	if payload.StandardClaims.Issuer == "" {
		payload.StandardClaims.Issuer = TokenIssuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	return token.SignedString([]byte(secretKey))
}

// ParseToken parses and validates a bearer token string using the shared secret.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token carries no subject")
	}

	return claims, nil
}
