package server

// Server runs the configured transports until SIGINT or SIGTERM arrives.
type Server interface {
	// RunServer blocks until a shutdown signal, then drains every transport.
	RunServer()
	// Shutdown stops the transports without waiting for a signal.
	Shutdown()
}
