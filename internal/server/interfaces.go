package server

// Server is the lifecycle contract of the backend listener.
//
// RunServer blocks until a stop signal arrives; Shutdown drains in-flight
// requests and closes the listener.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
