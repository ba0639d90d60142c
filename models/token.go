package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed JWT bearer token presented to a guarded route.
//
// It embeds [jwt.Token] for low-level access and [jwt.RegisteredClaims] so the
// token can be passed directly to jwt.ParseWithClaims.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`
}

// Subject returns the "sub" claim, or an empty string when it is absent.
func (t *Token) Subject() string {
	sub, err := t.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
