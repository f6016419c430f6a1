package server

// Server is the lifecycle every transport server in this package follows:
// [RunServer] blocks for the whole serving lifetime, [Shutdown] stops it
// gracefully and releases whatever it holds.
type Server interface {
	// RunServer serves requests until the server is stopped.
	RunServer()

	// Shutdown drains in-flight requests and closes the listener.
	Shutdown()
}
