package jwks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/authedge/go-jwt-decoder/internal/oidc"
)

// RemoteSource fetches keys from a JWKS endpoint and caches them.
// The endpoint is either configured directly with WithCustomJWKSURI
// or discovered from the issuer's OIDC metadata on first use.
//
// The underlying cache handles TTL expiry, background refresh, and
// coalescing of concurrent fetches, so a burst of decodes against a
// cold source costs a single HTTP request.
type RemoteSource struct {
	cache      Cache
	issuerURL  *url.URL
	httpClient *http.Client

	// JWKS URI discovery, lazily initialized and memoized. A failed
	// discovery leaves jwksURI empty so the next Get retries it.
	jwksURIMu sync.Mutex
	jwksURI   string
}

// NewRemoteSource builds and returns a new *RemoteSource.
//
// Required options (one of):
//   - WithIssuerURL: OIDC issuer URL for JWKS discovery
//   - WithCustomJWKSURI: JWKS URI to fetch directly (skips discovery)
//
// Optional options:
//   - WithCacheTTL: cache refresh interval (default: 15 minutes)
//   - WithCustomClient: custom HTTP client
//   - WithCache: custom cache implementation
//   - WithFetchAttempts: attempts per fetch before giving up
//
// Example:
//
//	source, err := jwks.NewRemoteSource(
//	    jwks.WithIssuerURL(issuerURL),
//	    jwks.WithCacheTTL(5*time.Minute),
//	)
func NewRemoteSource(opts ...RemoteSourceOption) (*RemoteSource, error) {
	config := &remoteSourceConfig{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		cacheTTL:      defaultCacheTTL,
		fetchAttempts: defaultFetchAttempts,
	}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if config.issuerURL == nil && config.customJWKSURI == nil {
		return nil, fmt.Errorf("either an issuer URL or a custom JWKS URI is required (use WithIssuerURL or WithCustomJWKSURI)")
	}

	s := &RemoteSource{
		issuerURL:  config.issuerURL,
		httpClient: config.httpClient,
	}

	// A custom URI skips discovery entirely.
	if config.customJWKSURI != nil {
		s.jwksURI = config.customJWKSURI.String()
	}

	if config.cache != nil {
		s.cache = config.cache
	} else {
		s.cache = newMemoryCache(config.httpClient, config.cacheTTL, config.fetchAttempts)
	}

	return s, nil
}

// Get returns the cached keys matching the criterion, fetching the
// JWKS first when the cache is cold or expired. An empty slice with
// a nil error means the set was fetched but holds no matching key.
func (s *RemoteSource) Get(ctx context.Context, criterion Criterion) ([]jwk.Key, error) {
	jwksURI, err := s.getJWKSURI(ctx)
	if err != nil {
		return nil, err
	}

	set, err := s.cache.Get(ctx, jwksURI)
	if err != nil {
		return nil, err
	}

	return filterKeys(set, criterion), nil
}

// getJWKSURI returns the JWKS URI, discovering it if necessary.
func (s *RemoteSource) getJWKSURI(ctx context.Context) (string, error) {
	s.jwksURIMu.Lock()
	defer s.jwksURIMu.Unlock()

	// Fast path: URI already set (custom URI or already discovered).
	if s.jwksURI != "" {
		return s.jwksURI, nil
	}

	wkEndpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, s.httpClient, *s.issuerURL)
	if err != nil {
		return "", fmt.Errorf("could not discover JWKS URI: %w", err)
	}

	if _, err := url.Parse(wkEndpoints.JWKSURI); err != nil {
		return "", fmt.Errorf("could not parse JWKS URI from well known endpoints: %w", err)
	}

	s.jwksURI = wkEndpoints.JWKSURI
	return s.jwksURI, nil
}
