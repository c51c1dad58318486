package jwtdecoder

import (
	"errors"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
)

// verifySignature checks the token signature against the candidate
// keys in order and accepts the first one that verifies. The
// algorithm is the pinned one from the selection criterion, so a
// tampered header cannot redirect verification to a weaker scheme.
// Verification runs over the compact serialization exactly as it was
// received.
func verifySignature(parsed *parsedToken, alg jwa.SignatureAlgorithm, keys []jwk.Key) error {
	signed := []byte(parsed.raw)

	for _, key := range keys {
		if _, err := jws.Verify(signed, jws.WithKey(alg, key)); err == nil {
			return nil
		}
	}

	return &decodeError{
		kind:    ErrBadSignature,
		details: errors.New("could not verify the token signature with any matching key"),
	}
}

// validateClaims runs the structural claim checks that only make
// sense once the signature is known good: exp must not be in the
// past and nbf must not be in the future, both within the allowed
// clock skew.
func (d *Decoder) validateClaims(claims map[string]any) error {
	now := d.clock()

	if expiry := numericDateClaim(claims, "exp"); expiry != nil {
		if now.Add(-d.clockSkew).After(*expiry) {
			return &decodeError{kind: ErrBadClaims, details: ErrTokenExpired}
		}
	}

	if notBefore := numericDateClaim(claims, "nbf"); notBefore != nil {
		if now.Add(d.clockSkew).Before(*notBefore) {
			return &decodeError{kind: ErrBadClaims, details: ErrTokenNotYetValid}
		}
	}

	return nil
}
