package jwtdecoder

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/authedge/go-jwt-decoder/jwks"
)

// Decoder decodes and verifies JWTs in compact serialization. A
// Decoder is immutable after construction and safe for concurrent
// use; every Decode call keeps its state on the stack and shares
// nothing but the key source with other calls.
type Decoder struct {
	keySource  jwks.Source                 // Required.
	algorithms map[SignatureAlgorithm]bool // Defaults to RS256.
	clock      func() time.Time            // Defaults to time.Now.
	clockSkew  time.Duration               // Optional.
	logger     Logger                      // Optional.
	metrics    Metrics                     // Optional.
	tracer     Tracer                      // Optional.
}

// New constructs a new Decoder with the supplied options. A key
// source is required; without any WithAlgorithms option the decoder
// accepts RS256 only.
//
// Example:
//
//	source, err := jwks.NewRemoteSource(
//	    jwks.WithIssuerURL(issuerURL),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoder, err := jwtdecoder.New(
//	    jwtdecoder.WithKeySource(source),
//	    jwtdecoder.WithAlgorithms(jwtdecoder.RS256),
//	)
func New(opts ...Option) (*Decoder, error) {
	d := &Decoder{
		algorithms: map[SignatureAlgorithm]bool{RS256: true},
		clock:      time.Now,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if d.keySource == nil {
		return nil, ErrKeySourceNil
	}

	return d, nil
}

// NewWithKeySet constructs a Decoder that verifies tokens against a
// fixed, in-memory key set.
func NewWithKeySet(set jwk.Set, opts ...Option) (*Decoder, error) {
	withSource := append([]Option{WithKeySource(jwks.NewStaticSource(set))}, opts...)
	return New(withSource...)
}

// NewWithRSAPublicKey constructs a Decoder that verifies tokens
// against a single RSA public key. Unless overridden with
// WithAlgorithms, the decoder accepts RS256 only.
func NewWithRSAPublicKey(publicKey *rsa.PublicKey, opts ...Option) (*Decoder, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}

	key, err := jwk.FromRaw(publicKey)
	if err != nil {
		return nil, fmt.Errorf("could not build a JWK from the public key: %w", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return nil, fmt.Errorf("could not add the key to the key set: %w", err)
	}

	return NewWithKeySet(set, opts...)
}

// Decode parses rawToken, resolves verification keys from the key
// source, verifies the signature and the structural claims, and
// returns the decoded token.
//
// Every failure satisfies errors.Is against exactly one of
// ErrMalformed, ErrUnsupportedAlgorithm, ErrSourceUnavailable,
// ErrBadSignature or ErrBadClaims, with the underlying cause
// reachable through errors.Unwrap. Only ErrSourceUnavailable is
// worth retrying; the other four are verdicts about the token
// itself.
//
// The key fetch is the only step that can block; ctx cancellation
// and timeouts surface as ErrSourceUnavailable, never as a token.
func (d *Decoder) Decode(ctx context.Context, rawToken string) (*Token, error) {
	start := time.Now()
	ctx, span := d.startSpan(ctx, "jwtdecoder.Decode")
	defer span.Finish()

	token, err := d.decode(ctx, rawToken, span)

	outcome := "success"
	if err != nil {
		outcome = outcomeLabel(err)
		if d.logger != nil {
			d.logger.Warnf("token decode failed: %v", err)
		}
	}
	span.SetTag("jwt.outcome", outcome)

	if d.metrics != nil {
		tags := map[string]string{"outcome": outcome}
		d.metrics.IncCounter("jwt_decoder_decodes_total", tags)
		d.metrics.ObserveHistogram("jwt_decoder_decode_duration_seconds", time.Since(start).Seconds(), tags)
	}

	return token, err
}

func (d *Decoder) decode(ctx context.Context, rawToken string, span Span) (*Token, error) {
	parsed, err := parseCompact(rawToken)
	if err != nil {
		return nil, &decodeError{kind: ErrMalformed, details: err}
	}

	criterion, err := d.selectCriterion(parsed.header)
	if err != nil {
		return nil, err
	}
	span.SetTag("jwt.algorithm", criterion.Algorithm.String())
	if criterion.KeyID != "" {
		span.SetTag("jwt.key_id", criterion.KeyID)
	}

	if d.logger != nil {
		d.logger.Debugf("resolving verification keys for algorithm %s", criterion.Algorithm)
	}

	keys, err := d.keySource.Get(ctx, criterion)
	if err != nil {
		return nil, &decodeError{kind: ErrSourceUnavailable, details: err}
	}

	// A source may ignore cancellation; a cancelled decode must not
	// produce a token regardless.
	if err := ctx.Err(); err != nil {
		return nil, &decodeError{kind: ErrSourceUnavailable, details: err}
	}

	if err := verifySignature(parsed, criterion.Algorithm, keys); err != nil {
		return nil, err
	}

	if err := d.validateClaims(parsed.claims); err != nil {
		return nil, err
	}

	if d.logger != nil {
		d.logger.Debugf("token verified with algorithm %s", criterion.Algorithm)
	}

	return materializeToken(parsed), nil
}

func (d *Decoder) startSpan(ctx context.Context, operationName string) (context.Context, Span) {
	if d.tracer == nil {
		return ctx, &NoopSpan{}
	}
	return d.tracer.StartSpan(ctx, operationName)
}

// outcomeLabel maps a decode failure to its metric and span label.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return "unsupported_algorithm"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrBadClaims):
		return "bad_claims"
	}
	return "error"
}
