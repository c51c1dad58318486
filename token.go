package jwtdecoder

import (
	"encoding/json"
	"time"
)

// Token is a decoded and verified JWT. It is an immutable value: the
// header and claims maps are deep copies, so callers may hold on to a
// Token or mutate its maps without affecting the decoder or other
// callers.
type Token struct {
	// Raw is the compact serialization the token was decoded from.
	Raw string

	// Headers holds the decoded JOSE header parameters.
	Headers map[string]any

	// Claims holds the decoded payload claims. Numeric values are
	// json.Number.
	Claims map[string]any

	// IssuedAt is the iat claim. When the token carries no iat but
	// does carry an exp, IssuedAt defaults to one second before
	// ExpiresAt. It is nil when both claims are absent.
	IssuedAt *time.Time

	// ExpiresAt is the exp claim, or nil when absent.
	ExpiresAt *time.Time
}

// materializeToken builds the public Token value from a verified
// parse result. It never fails: claims that are not usable as dates
// simply stay in the Claims map untouched.
func materializeToken(parsed *parsedToken) *Token {
	token := &Token{
		Raw:     parsed.raw,
		Headers: deepCopyMap(parsed.header),
		Claims:  deepCopyMap(parsed.claims),
	}

	token.ExpiresAt = numericDateClaim(parsed.claims, "exp")
	token.IssuedAt = numericDateClaim(parsed.claims, "iat")

	// Tokens without an iat are stamped as issued one second before
	// they expire, so downstream age checks always have a value to
	// work with.
	if token.IssuedAt == nil && token.ExpiresAt != nil {
		issuedAt := token.ExpiresAt.Add(-time.Second)
		token.IssuedAt = &issuedAt
	}

	return token
}

// numericDateClaim reads the named claim as an RFC 7519 NumericDate.
// Fractional seconds are truncated. Absent or non-numeric claims
// yield nil.
func numericDateClaim(claims map[string]any, name string) *time.Time {
	value, ok := claims[name]
	if !ok {
		return nil
	}

	var seconds int64
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		seconds = int64(f)
	case float64:
		seconds = int64(v)
	case int64:
		seconds = v
	case int:
		seconds = int64(v)
	default:
		return nil
	}

	date := time.Unix(seconds, 0).UTC()
	return &date
}

func deepCopyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopyValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return deepCopyMap(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
