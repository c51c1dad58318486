package jwtdecoder

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the token is not a structurally
	// valid compact JWS: it does not have three base64url segments, or
	// its header or payload is not a JSON object.
	ErrMalformed = errors.New("token is malformed")

	// ErrUnsupportedAlgorithm is returned when the algorithm declared
	// in the token header is not in the decoder's configured set. The
	// key source is never consulted for such tokens.
	ErrUnsupportedAlgorithm = errors.New("token signing algorithm is unsupported")

	// ErrSourceUnavailable is returned when the key source could not
	// be consulted, for example because of a network failure, a
	// timeout, or a cancelled context. It says nothing about the token
	// itself; decoding the same token may succeed once the source
	// recovers.
	ErrSourceUnavailable = errors.New("key source is unavailable")

	// ErrBadSignature is returned when no candidate key verifies the
	// token signature. An empty candidate list yields this error too.
	ErrBadSignature = errors.New("token signature is invalid")

	// ErrBadClaims is returned when the signature verified but a
	// structural claim check failed, such as an expired token.
	ErrBadClaims = errors.New("token claims are invalid")
)

var (
	// ErrTokenExpired reports that the exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenNotYetValid reports that the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("token is not valid yet")
)

// decodeError pairs one of the sentinel errors above with the
// underlying cause. We do not expose this publicly because the
// interface methods of Is and Unwrap should give the user all they
// need.
type decodeError struct {
	kind    error
	details error
}

// Is allows the error to support equality to its sentinel.
func (e *decodeError) Is(target error) bool {
	return target == e.kind
}

// Error returns a string representation of the error. The prefix is
// stable so callers that match on it keep working across releases.
func (e *decodeError) Error() string {
	return fmt.Sprintf("An error occurred while attempting to decode the token: %s", e.details)
}

// Unwrap allows the error to support equality to the underlying
// cause and not just the sentinel.
func (e *decodeError) Unwrap() error {
	return e.details
}
