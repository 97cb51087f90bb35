// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request IDs, request logging, tracing, metrics, CORS,
// rate limiting, and panic recovery. It also owns the global error
// handler that turns every error into a {"detail": ...} response.
package middleware
