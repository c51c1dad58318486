/*
Package oidc provides OIDC (OpenID Connect) discovery functionality.

This internal package implements the logic to discover OIDC provider endpoints
by fetching the .well-known/openid-configuration document from the issuer.

# OIDC Discovery

OIDC providers expose a discovery document at a well-known URL:

	https://issuer.example.com/.well-known/openid-configuration

This document contains metadata about the provider, including:
  - issuer: The issuer identifier
  - jwks_uri: URL to fetch JSON Web Keys
  - And more...

Only the fields this module needs are decoded.

# Usage

	issuerURL, _ := url.Parse("https://auth.example.com/")
	client := &http.Client{Timeout: 10 * time.Second}

	endpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, client, *issuerURL)
	if err != nil {
	    // Handle error
	}

	jwksURI := endpoints.JWKSURI

# Issuer Validation

When the metadata document declares an issuer, it must match the URL
the endpoints were requested for, up to a trailing slash. A document
served for one issuer that claims to be another is rejected. Metadata
without an issuer field is accepted for compatibility with older
providers.

# Error Handling

	endpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, client, issuerURL)
	if err != nil {
	    // Possible errors:
	    // - Network failure
	    // - HTTP error status (e.g., 404, 500)
	    // - Invalid JSON response
	    // - Issuer mismatch
	}

# Specification

This package implements OIDC Discovery as defined in:
OpenID Connect Discovery 1.0
https://openid.net/specs/openid-connect-discovery-1_0.html
*/
package oidc
