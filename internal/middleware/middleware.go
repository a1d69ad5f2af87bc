// Package middleware holds the global and route-specific middleware.
//
// It covers request ids, the request-scoped logger, New Relic tracing,
// access logging, CORS, security headers, body limits, panic recovery,
// per-IP rate limiting, the admin authorization gate and the global error
// handler.
package middleware
