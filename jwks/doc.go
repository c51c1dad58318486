/*
Package jwks provides JWKS (JSON Web Key Set) sourcing and caching for JWT verification.

This package implements key sources that supply public keys to the
decoder. A source takes a selection criterion (algorithm, optional
key ID, key use) and returns the candidate keys that match it.

# Overview

Key sources handle the complexity of:
  - OIDC discovery (fetching .well-known/openid-configuration)
  - Fetching JWKS from the issuer's jwks_uri
  - Caching keys with configurable TTL
  - Thread-safe concurrent access
  - Automatic cache refresh

# Choosing a Source

StaticSource: fixed in-memory key set
  - No network access, ever
  - Keys supplied at construction
  - Use for: tests, keys distributed out of band, air-gapped setups

RemoteSource: production JWKS fetching with caching
  - Caches JWKS with configurable TTL (default: 15 minutes)
  - Coalesces concurrent fetches for the same URI
  - Proactive background refresh at 80% TTL
  - OIDC discovery retried until it succeeds, then memoized
  - Use for: any issuer that publishes a JWKS endpoint

# Static Keys

	set := jwk.NewSet()
	set.AddKey(publicKey)

	source := jwks.NewStaticSource(set)

# Remote Keys with OIDC Discovery

	issuerURL, _ := url.Parse("https://auth.example.com/")

	source, err := jwks.NewRemoteSource(
	    jwks.WithIssuerURL(issuerURL),
	    jwks.WithCacheTTL(5*time.Minute),
	)
	if err != nil {
	    log.Fatal(err)
	}

The JWKS URI is discovered from the issuer's well-known endpoint on
first use:

	https://auth.example.com/.well-known/openid-configuration

The jwks_uri field from the response is used to fetch keys. When the
metadata document declares an issuer, it must match the configured
issuer URL (a trailing slash difference is tolerated).

# Custom JWKS URI

Skip OIDC discovery and fetch from a fixed URI:

	jwksURI, _ := url.Parse("https://example.com/.well-known/jwks.json")

	source, err := jwks.NewRemoteSource(
	    jwks.WithCustomJWKSURI(jwksURI),
	)

# Custom HTTP Client

Configure timeouts, proxies, or custom transport:

	client := &http.Client{
	    Timeout: 10 * time.Second,
	    Transport: myCustomTransport,
	}

	source, err := jwks.NewRemoteSource(
	    jwks.WithIssuerURL(issuerURL),
	    jwks.WithCustomClient(client),
	)

# Cache-Control Header Support

The cache respects HTTP Cache-Control headers from JWKS responses
only when the configured TTL is shorter than the max-age value. This
allows extending cache time when the issuer permits longer caching.

Behavior:
  - Uses Cache-Control max-age only when configured TTL < max-age
  - Configured TTL acts as a minimum refresh interval
  - Validates max-age is reasonable (1 second to 7 days)

Example with a 15-minute configured TTL:

	// "Cache-Control: max-age=3600"  → 1 hour (max-age wins, it is longer)
	// "Cache-Control: max-age=300"   → 15 minutes (configured TTL wins)
	// "Cache-Control: max-age=86400000" → 15 minutes (max-age rejected, over 7 days)
	// No Cache-Control header        → 15 minutes

# Custom Cache Implementation

Implement your own cache, for example Redis-backed, to share fetched
keys between instances:

	type RedisCache struct {
	    client *redis.Client
	}

	func (c *RedisCache) Get(ctx context.Context, jwksURI string) (jwk.Set, error) {
	    // Implement Redis caching logic
	}

	source, err := jwks.NewRemoteSource(
	    jwks.WithIssuerURL(issuerURL),
	    jwks.WithCache(customCache),
	)

# Key Selection

Sources return only keys that match the criterion:
  - kid: when the criterion carries a key ID, only keys with exactly
    that ID match; keys without an ID are excluded
  - use: keys declaring a use other than sig are excluded
  - key_ops: keys declaring operations without verify are excluded
  - alg: keys declaring an algorithm must declare the criterion's;
    keys without one match on key type (RSA for RS/PS, EC for ES,
    OKP for EdDSA)

An empty result is not an error. The source answered; the set simply
holds no usable key. The decoder reports that as a bad signature.

# Cache Behavior

The default in-memory cache provides:

 1. Thread-safe access: read/write locks for concurrent requests

 2. Lazy fetching: only fetches when the cache is empty or expired

 3. Single-flight fetching: concurrent misses for one URI share one
    request (prevents thundering herd)

 4. Background refresh: entries past 80% of their TTL are refreshed
    off the request path, so hot entries never expire in the
    foreground

 5. Bounded retry: transient fetch failures are retried once before
    the error is reported

# Thread Safety

All sources are safe for concurrent use:
  - StaticSource: immutable after construction
  - RemoteSource: cache guarded by RWMutex, fetches coalesced per URI

Safe to share one source between any number of decoders.
*/
package jwks
