package jwtdecoder

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// parsedToken holds the decoded parts of a compact JWS together with
// the raw serialization they came from. The raw form is kept so that
// signature verification runs over the exact bytes that were
// received, not over a re-serialization.
type parsedToken struct {
	raw       string
	header    map[string]any
	claims    map[string]any
	signature []byte
}

// parseCompact splits a compact JWS into its three segments and
// decodes them. It performs structural validation only: the header
// and payload must be base64url-encoded JSON objects and the
// signature must be valid base64url. It never touches the network
// and has no side effects.
func parseCompact(raw string) (*parsedToken, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("compact serialization must have three segments, got %d", len(parts))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("could not decode the header segment: %w", err)
	}
	header, err := decodeJSONObject(headerJSON)
	if err != nil {
		return nil, fmt.Errorf("could not parse the header segment: %w", err)
	}

	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("could not decode the payload segment: %w", err)
	}
	claims, err := decodeJSONObject(claimsJSON)
	if err != nil {
		return nil, fmt.Errorf("could not parse the payload segment: %w", err)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("could not decode the signature segment: %w", err)
	}

	return &parsedToken{
		raw:       raw,
		header:    header,
		claims:    claims,
		signature: signature,
	}, nil
}

// decodeJSONObject unmarshals data into a map, requiring the top
// level value to be a JSON object. Numbers decode as json.Number so
// numeric claims survive a decode round trip without float drift.
func decodeJSONObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("segment is not a JSON object")
	}
	if dec.More() {
		return nil, errors.New("segment has trailing data after the JSON object")
	}

	return obj, nil
}
