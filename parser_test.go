package jwtdecoder

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompact(t *testing.T) {
	t.Run("It parses a structurally valid token", func(t *testing.T) {
		raw := compactToken(t,
			map[string]any{"alg": "RS256", "kid": "key-1"},
			map[string]any{"sub": "jane", "admin": true},
			[]byte{1, 2, 3},
		)

		parsed, err := parseCompact(raw)
		require.NoError(t, err)

		assert.Equal(t, raw, parsed.raw)
		assert.Equal(t, "RS256", parsed.header["alg"])
		assert.Equal(t, "key-1", parsed.header["kid"])
		assert.Equal(t, "jane", parsed.claims["sub"])
		assert.Equal(t, true, parsed.claims["admin"])
		assert.Equal(t, []byte{1, 2, 3}, parsed.signature)
	})

	t.Run("It decodes numeric claims as json.Number", func(t *testing.T) {
		raw := compactToken(t,
			map[string]any{"alg": "RS256"},
			map[string]any{"exp": 1700003600, "ratio": 0.5},
			nil,
		)

		parsed, err := parseCompact(raw)
		require.NoError(t, err)

		assert.Equal(t, json.Number("1700003600"), parsed.claims["exp"])
		assert.Equal(t, json.Number("0.5"), parsed.claims["ratio"])
	})

	t.Run("It accepts an empty signature segment", func(t *testing.T) {
		raw := compactToken(t,
			map[string]any{"alg": "none"},
			map[string]any{"sub": "jane"},
			nil,
		)

		parsed, err := parseCompact(raw)
		require.NoError(t, err)
		assert.Empty(t, parsed.signature)
	})

	t.Run("It rejects tokens with fewer than three segments", func(t *testing.T) {
		_, err := parseCompact("one.two")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must have three segments, got 2")
	})

	t.Run("It rejects tokens with more than three segments", func(t *testing.T) {
		_, err := parseCompact("one.two.three.four")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must have three segments, got 4")
	})

	t.Run("It rejects an empty string", func(t *testing.T) {
		_, err := parseCompact("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must have three segments, got 1")
	})

	t.Run("It rejects standard base64 in the header segment", func(t *testing.T) {
		raw := "a+b/c==" + "." + encodeSegment(t, map[string]any{}) + "."

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not decode the header segment")
	})

	t.Run("It rejects base64 padding in the payload segment", func(t *testing.T) {
		padded := base64.URLEncoding.EncodeToString([]byte(`{"sub":"j"}`))
		require.Contains(t, padded, "=")
		raw := encodeSegment(t, map[string]any{"alg": "RS256"}) + "." + padded + "."

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not decode the payload segment")
	})

	t.Run("It rejects invalid base64 in the signature segment", func(t *testing.T) {
		raw := encodeSegment(t, map[string]any{"alg": "RS256"}) + "." + encodeSegment(t, map[string]any{}) + ".!!!"

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not decode the signature segment")
	})

	t.Run("It rejects a header that is not a JSON object", func(t *testing.T) {
		raw := compactToken(t, []any{"RS256"}, map[string]any{}, nil)

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse the header segment")
	})

	t.Run("It rejects a null header", func(t *testing.T) {
		raw := compactToken(t, nil, map[string]any{}, nil)

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "segment is not a JSON object")
	})

	t.Run("It rejects a payload that is not a JSON object", func(t *testing.T) {
		raw := compactToken(t, map[string]any{"alg": "RS256"}, "just a string", nil)

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse the payload segment")
	})

	t.Run("It rejects trailing data after the payload object", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"jane"}{"sub":"mallory"}`))
		raw := encodeSegment(t, map[string]any{"alg": "RS256"}) + "." + payload + "."

		_, err := parseCompact(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trailing data after the JSON object")
	})

	t.Run("It accepts trailing whitespace after the payload object", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte("{\"sub\":\"jane\"}\n"))
		raw := encodeSegment(t, map[string]any{"alg": "RS256"}) + "." + payload + "."

		parsed, err := parseCompact(raw)
		require.NoError(t, err)
		assert.Equal(t, "jane", parsed.claims["sub"])
	})
}

// encodeSegment marshals v and base64url-encodes it without padding.
func encodeSegment(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return base64.RawURLEncoding.EncodeToString(data)
}

// compactToken assembles a compact serialization from a header, a
// payload and raw signature bytes. The signature is not valid for
// anything; this is for structural tests only.
func compactToken(t *testing.T, header, claims any, signature []byte) string {
	t.Helper()

	return strings.Join([]string{
		encodeSegment(t, header),
		encodeSegment(t, claims),
		base64.RawURLEncoding.EncodeToString(signature),
	}, ".")
}
