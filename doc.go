/*
Package jwtdecoder decodes and verifies JSON Web Tokens.

This package implements a non-blocking JWT decoder for tokens in JWS
compact serialization. It parses the token, selects verification keys
from a configurable source, verifies the signature against a pinned
set of asymmetric algorithms, and materializes the claims into an
immutable Token. Tokens are never issued or signed here; the package
is consume-only.

# Quick Start

	import (
	    "github.com/authedge/go-jwt-decoder"
	    "github.com/authedge/go-jwt-decoder/jwks"
	)

	func main() {
	    issuerURL, _ := url.Parse("https://auth.example.com/")
	    source, err := jwks.NewRemoteSource(
	        jwks.WithIssuerURL(issuerURL),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    decoder, err := jwtdecoder.New(
	        jwtdecoder.WithKeySource(source),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    token, err := decoder.Decode(ctx, rawToken)
	    if err != nil {
	        log.Fatal(err)
	    }

	    fmt.Println(token.Claims["sub"])
	}

# Key Sources

Keys come from a jwks.Source. Two implementations are provided:

StaticSource holds a fixed in-memory key set. Use it when the keys
are distributed out of band:

	set := jwk.NewSet()
	set.AddKey(publicKey)

	decoder, err := jwtdecoder.NewWithKeySet(set)

RemoteSource fetches keys from a JWKS endpoint, discovered from the
issuer's OIDC metadata or configured directly, and caches them with a
TTL and background refresh:

	source, err := jwks.NewRemoteSource(
	    jwks.WithIssuerURL(issuerURL),
	    jwks.WithCacheTTL(5*time.Minute),
	)

	decoder, err := jwtdecoder.New(
	    jwtdecoder.WithKeySource(source),
	)

For the common single-key deployment there is a shortcut that wraps
an *rsa.PublicKey in a static source:

	decoder, err := jwtdecoder.NewWithRSAPublicKey(publicKey)

# Algorithms

The decoder only accepts tokens whose header declares one of its
configured algorithms. The default is RS256. Tokens declaring any
other algorithm are rejected before keys are ever fetched, which
closes the usual algorithm confusion attacks (alg none, asymmetric
key used as an HMAC secret).

	decoder, err := jwtdecoder.New(
	    jwtdecoder.WithKeySource(source),
	    jwtdecoder.WithAlgorithms(jwtdecoder.RS256, jwtdecoder.ES256),
	)

Only asymmetric algorithms are supported: RS256/384/512, PS256/384/512,
ES256/384/512, and EdDSA.

# Error Handling

Every decode failure wraps one of five sentinel errors, so callers
can branch with errors.Is without string matching:

	token, err := decoder.Decode(ctx, rawToken)
	if err != nil {
	    switch {
	    case errors.Is(err, jwtdecoder.ErrMalformed):
	        // Token is not a structurally valid JWT. Reject permanently.
	    case errors.Is(err, jwtdecoder.ErrUnsupportedAlgorithm):
	        // Header declares an algorithm outside the configured set.
	    case errors.Is(err, jwtdecoder.ErrSourceUnavailable):
	        // Key source could not be reached. Safe to retry later.
	    case errors.Is(err, jwtdecoder.ErrBadSignature):
	        // No key verified the signature.
	    case errors.Is(err, jwtdecoder.ErrBadClaims):
	        // Signature is valid but a claim check failed.
	    }
	}

errors.Unwrap exposes the underlying cause (a network error, a parse
error) for logging.

# Issued At Defaulting

Tokens without an iat claim but with an exp claim are given an
IssuedAt of exactly one second before ExpiresAt, so downstream code
that reasons about token age always has a value to work with. The
Claims map itself is never modified; the default only appears in the
Token.IssuedAt field.

# Observability

The decoder is silent by default. Hooks are opt-in:

	decoder, err := jwtdecoder.New(
	    jwtdecoder.WithKeySource(source),
	    jwtdecoder.WithLogger(jwtdecoder.NewZapLogger(sugar)),
	    jwtdecoder.WithMetrics(jwtdecoder.NewPrometheusMetrics()),
	    jwtdecoder.WithTracer(jwtdecoder.NewOpenTelemetryTracer(tracer)),
	)

Adapters are provided for zap, zerolog, and logrus loggers, for
Prometheus metrics, and for OpenTelemetry tracing. Each decode emits
a counter and a duration histogram labelled with the outcome.

# Clock Control

Claim checks use an injectable clock, which keeps expiry tests
deterministic:

	decoder, err := jwtdecoder.New(
	    jwtdecoder.WithKeySource(source),
	    jwtdecoder.WithClock(func() time.Time { return frozenNow }),
	    jwtdecoder.WithAllowedClockSkew(30*time.Second),
	)

# Thread Safety

A Decoder is immutable after New and safe for concurrent use. Decode
may be called from any number of goroutines; the decoder itself holds
no per-call state. Returned Tokens are deep copies and never share
memory between calls.

# Cancellation

Decode honors context cancellation at the key fetch. A decode whose
context is cancelled returns ErrSourceUnavailable and never returns a
token, even if the source produced keys after the cancellation.
*/
package jwtdecoder
