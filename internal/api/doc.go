// Package api provides HTTP handlers for the portfolio service.
//
// Handlers decode and validate requests, call into the store layer, and
// translate store and domain errors into HTTP status codes. All responses
// are JSON; error responses carry a trace ID for log correlation.
package api
