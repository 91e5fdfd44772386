package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims carried by the identity provider's bearer tokens.
// Only the projection the web core needs is modelled here; issuing and
// refreshing tokens is the identity provider's own concern.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), Iss (Issuer), and Subject. These drive validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// Name is the account holder's display name as known to the identity provider.
	Name string `json:"name,omitempty"`

	// Username is the identity provider's handle for the account, which may
	// differ from the platform username chosen during onboarding.
	Username string `json:"username,omitempty"`

	// ImageURL points at the account's avatar hosted by the identity provider.
	ImageURL string `json:"image_url,omitempty"`
}

// UserID returns the stable account identifier (the token subject).
func (p *Payload) UserID() string {
	return p.Subject
}
