// Package http implements the REST transport of the application.
//
// It exposes route wiring, request handlers, and middleware. Sessions travel
// in an HTTP-only cookie resolved by the auth middleware; tracing, access
// logging, metrics, CORS and response compression are applied to every
// request before it reaches the service layer.
package http
