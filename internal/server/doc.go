// Package server owns the listeners of the user directory.
//
// NewServer binds the HTTP API and, when an address is configured, the gRPC
// health service. While the gRPC server runs, a background probe keeps its
// health status in step with the user store. RunServer returns after a
// signal once both transports have drained.
package server
