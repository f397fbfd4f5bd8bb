// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, HTTP header names, media types and cross-cutting
keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Headers & Media Types: Names used by negotiation and pagination.
  - Cache Taxonomy: Redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "fiver-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Request Limits

const (
	// MaxRequestBodyBytes caps JSON request bodies (movie input and patch documents).
	MaxRequestBodyBytes = 1 << 20
)

// # HTTP Headers

const (
	HeaderAccept          = "Accept"
	HeaderContentType     = "Content-Type"
	HeaderLocation        = "Location"
	HeaderVary            = "Vary"
	HeaderOrigin          = "Origin"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXRealIP         = "X-Real-IP"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXForwardedProto = "X-Forwarded-Proto"
	HeaderXForwardedHost  = "X-Forwarded-Host"
	HeaderXPagination     = "X-Pagination"
)

// # Media Types

const (
	// MediaTypeJSON is the generic JSON request media type.
	MediaTypeJSON = "application/json"

	// MediaTypeJSONPatch is the RFC 6902 patch document media type.
	MediaTypeJSONPatch = "application/json-patch+json"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Store Backends

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixMovie = "fiver:movie:"
)
