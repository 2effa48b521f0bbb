package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued for one controller session.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access. The subject claim
// carries the operator's username and the ID claim (jti) carries the
// session identifier the server compares against its active session.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Username returns the operator name stored in the subject claim.
func (t *Token) Username() string {
	return t.Subject
}

// SessionID returns the session identifier stored in the jti claim.
func (t *Token) SessionID() string {
	return t.ID
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
