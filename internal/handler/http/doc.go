// Package http implements the REST transport of the user directory.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging, bearer authentication and role checks are handled here
// before requests are delegated to the service layer.
package http
