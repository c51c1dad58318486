package jwtdecoder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeToken(t *testing.T) {
	t.Run("It extracts iat and exp when both are present", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			raw: "raw",
			claims: map[string]any{
				"iat": json.Number("1700000000"),
				"exp": json.Number("1700003600"),
			},
		})

		require.NotNil(t, token.IssuedAt)
		require.NotNil(t, token.ExpiresAt)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), *token.IssuedAt)
		assert.Equal(t, time.Unix(1700003600, 0).UTC(), *token.ExpiresAt)
	})

	t.Run("It defaults iat to one second before exp when iat is absent", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"exp": json.Number("1700003600")},
		})

		require.NotNil(t, token.IssuedAt)
		require.NotNil(t, token.ExpiresAt)
		assert.Equal(t, time.Second, token.ExpiresAt.Sub(*token.IssuedAt))
		assert.Equal(t, time.Unix(1700003599, 0).UTC(), *token.IssuedAt)
	})

	t.Run("It does not invent an iat claim in the claims map", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"exp": json.Number("1700003600")},
		})

		_, ok := token.Claims["iat"]
		assert.False(t, ok, "the default lives in IssuedAt, never in the claims map")
	})

	t.Run("It leaves both dates nil when the token carries neither", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"sub": "jane"},
		})

		assert.Nil(t, token.IssuedAt)
		assert.Nil(t, token.ExpiresAt)
	})

	t.Run("It keeps iat when only iat is present", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"iat": json.Number("1700000000")},
		})

		require.NotNil(t, token.IssuedAt)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), *token.IssuedAt)
		assert.Nil(t, token.ExpiresAt)
	})

	t.Run("It truncates fractional seconds", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"exp": json.Number("1700003600.99")},
		})

		require.NotNil(t, token.ExpiresAt)
		assert.Equal(t, time.Unix(1700003600, 0).UTC(), *token.ExpiresAt)
	})

	t.Run("It ignores non-numeric date claims", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			claims: map[string]any{"exp": "tomorrow", "iat": true},
		})

		assert.Nil(t, token.IssuedAt)
		assert.Nil(t, token.ExpiresAt)
		assert.Equal(t, "tomorrow", token.Claims["exp"])
	})

	t.Run("It preserves the raw serialization", func(t *testing.T) {
		token := materializeToken(&parsedToken{
			raw:    "a.b.c",
			claims: map[string]any{},
		})

		assert.Equal(t, "a.b.c", token.Raw)
	})

	t.Run("It deep copies the header and claims maps", func(t *testing.T) {
		parsed := &parsedToken{
			header: map[string]any{"alg": "RS256"},
			claims: map[string]any{
				"sub": "jane",
				"metadata": map[string]any{
					"roles": []any{"admin", "auditor"},
				},
			},
		}

		token := materializeToken(parsed)

		if diff := cmp.Diff(parsed.claims, token.Claims); diff != "" {
			t.Fatalf("claims mismatch (-parsed +token):\n%s", diff)
		}

		token.Headers["alg"] = "none"
		token.Claims["sub"] = "mallory"
		token.Claims["metadata"].(map[string]any)["roles"].([]any)[0] = "root"

		assert.Equal(t, "RS256", parsed.header["alg"])
		assert.Equal(t, "jane", parsed.claims["sub"])
		assert.Equal(t, "admin", parsed.claims["metadata"].(map[string]any)["roles"].([]any)[0])
	})
}

func TestNumericDateClaim(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  *time.Time
	}{
		{name: "json number", value: json.Number("1700000000"), want: timePtr(time.Unix(1700000000, 0).UTC())},
		{name: "float64", value: float64(1700000000.75), want: timePtr(time.Unix(1700000000, 0).UTC())},
		{name: "int64", value: int64(1700000000), want: timePtr(time.Unix(1700000000, 0).UTC())},
		{name: "int", value: int(1700000000), want: timePtr(time.Unix(1700000000, 0).UTC())},
		{name: "invalid number", value: json.Number("abc"), want: nil},
		{name: "string", value: "1700000000", want: nil},
		{name: "bool", value: true, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := numericDateClaim(map[string]any{"exp": tc.value}, "exp")
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("absent claim", func(t *testing.T) {
		assert.Nil(t, numericDateClaim(map[string]any{}, "exp"))
	})
}

func timePtr(tm time.Time) *time.Time {
	return &tm
}
