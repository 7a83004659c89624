// Package middlewares provides net/http middleware for the login service.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID (or the other
// configured headers) when present and generating a UUID otherwise. Pair it
// with RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover turns a panic into a logged error and a 500 JSON response.
//
// # Request Logger
//
// RequestLogger writes one structured line per request. Only the path is
// logged; query strings may carry authorization codes.
package middlewares
