package server

// Server runs the clinic API until the process is asked to stop.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives and
	// the listener is shut down.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}
