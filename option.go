package jwtdecoder

import (
	"errors"
	"fmt"
	"time"

	"github.com/authedge/go-jwt-decoder/jwks"
)

// Option configures the Decoder.
// Returns error for validation failures.
type Option func(*Decoder) error

// WithKeySource sets the source the decoder resolves verification
// keys from (REQUIRED).
//
// Use jwks.NewStaticSource for a fixed in-memory key set or
// jwks.NewRemoteSource for keys fetched from a JWKS endpoint.
func WithKeySource(source jwks.Source) Option {
	return func(d *Decoder) error {
		if source == nil {
			return ErrKeySourceNil
		}
		d.keySource = source
		return nil
	}
}

// WithAlgorithms sets the signature algorithms the decoder accepts.
// Tokens declaring any other algorithm are rejected before the key
// source is consulted, so the header can never widen the set.
//
// Default: RS256
func WithAlgorithms(algorithms ...SignatureAlgorithm) Option {
	return func(d *Decoder) error {
		if len(algorithms) == 0 {
			return errors.New("at least one signature algorithm is required")
		}
		allowed := make(map[SignatureAlgorithm]bool, len(algorithms))
		for _, algorithm := range algorithms {
			if !allowedSigningAlgorithms[algorithm] {
				return fmt.Errorf("unsupported signature algorithm: %s", algorithm)
			}
			allowed[algorithm] = true
		}
		d.algorithms = allowed
		return nil
	}
}

// WithClock sets the time source used for claim validation. Useful
// in tests that need a fixed point in time.
//
// Default: time.Now
func WithClock(clock func() time.Time) Option {
	return func(d *Decoder) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		d.clock = clock
		return nil
	}
}

// WithAllowedClockSkew sets the allowed clock skew for time-based
// claims.
//
// This allows for some tolerance when validating the exp and nbf
// claims to account for clock differences between systems. If not
// set, the default is 0 (no clock skew allowed).
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(d *Decoder) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		d.clockSkew = skew
		return nil
	}
}

// WithLogger sets an optional logger for the decoder.
//
// Example:
//
//	decoder, err := jwtdecoder.New(
//	    jwtdecoder.WithKeySource(source),
//	    jwtdecoder.WithLogger(jwtdecoder.NewLogrusLogger(logrus.StandardLogger())),
//	)
func WithLogger(logger Logger) Option {
	return func(d *Decoder) error {
		if logger == nil {
			return ErrLoggerNil
		}
		d.logger = logger
		return nil
	}
}

// WithMetrics sets an optional metrics sink for the decoder. Decode
// outcomes and durations are recorded against it.
func WithMetrics(metrics Metrics) Option {
	return func(d *Decoder) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		d.metrics = metrics
		return nil
	}
}

// WithTracer sets an optional tracer for the decoder. Each Decode
// call runs inside one span tagged with the algorithm, key id and
// outcome.
func WithTracer(tracer Tracer) Option {
	return func(d *Decoder) error {
		if tracer == nil {
			return ErrTracerNil
		}
		d.tracer = tracer
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrKeySourceNil = errors.New("key source cannot be nil (use WithKeySource)")
	ErrLoggerNil    = errors.New("logger cannot be nil")
	ErrMetricsNil   = errors.New("metrics cannot be nil")
	ErrTracerNil    = errors.New("tracer cannot be nil")
)
