package jwks

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RemoteSourceOption is how options for the RemoteSource are set up.
type RemoteSourceOption func(*remoteSourceConfig) error

// remoteSourceConfig holds internal configuration for creating a RemoteSource.
type remoteSourceConfig struct {
	issuerURL     *url.URL
	customJWKSURI *url.URL
	httpClient    *http.Client
	cacheTTL      time.Duration
	cache         Cache
	fetchAttempts int
}

// WithIssuerURL sets the OIDC issuer URL for JWKS discovery.
//
// The issuer URL is used to discover the JWKS endpoint via the
// .well-known/openid-configuration endpoint.
func WithIssuerURL(issuerURL *url.URL) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if issuerURL == nil {
			return fmt.Errorf("issuer URL cannot be nil")
		}
		c.issuerURL = issuerURL
		return nil
	}
}

// WithCustomJWKSURI sets a custom JWKS URI for the RemoteSource.
// When set, the RemoteSource will fetch JWKS directly from this URI,
// skipping the OIDC discovery process (.well-known/openid-configuration).
func WithCustomJWKSURI(jwksURI *url.URL) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if jwksURI == nil {
			return fmt.Errorf("custom JWKS URI cannot be nil")
		}
		c.customJWKSURI = jwksURI
		return nil
	}
}

// WithCustomClient sets a custom HTTP client for the RemoteSource.
// If not specified, a default client with 30s timeout is used.
func WithCustomClient(client *http.Client) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		c.httpClient = client
		return nil
	}
}

// WithCacheTTL sets the cache refresh interval for the RemoteSource.
// If not specified, defaults to 15 minutes.
//
// The TTL determines the minimum interval between JWKS refreshes. A
// Cache-Control max-age on the JWKS response can extend it but never
// shorten it.
func WithCacheTTL(ttl time.Duration) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if ttl < 0 {
			return fmt.Errorf("cache TTL cannot be negative")
		}
		if ttl == 0 {
			ttl = defaultCacheTTL
		}
		c.cacheTTL = ttl
		return nil
	}
}

// WithCache sets a custom Cache implementation for the RemoteSource.
// This allows users to provide their own caching strategy, for
// example a Redis-backed cache shared between instances.
//
// Example:
//
//	customCache := &MyRedisCache{...}
//	source, err := jwks.NewRemoteSource(
//	    jwks.WithIssuerURL(issuerURL),
//	    jwks.WithCache(customCache),
//	)
func WithCache(cache Cache) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if cache == nil {
			return fmt.Errorf("cache cannot be nil")
		}
		c.cache = cache
		return nil
	}
}

// WithFetchAttempts sets how many times a JWKS fetch is attempted
// before giving up. If not specified, defaults to 2. Attempts after
// the first wait briefly before retrying.
func WithFetchAttempts(attempts int) RemoteSourceOption {
	return func(c *remoteSourceConfig) error {
		if attempts < 1 {
			return fmt.Errorf("fetch attempts must be at least 1")
		}
		c.fetchAttempts = attempts
		return nil
	}
}
