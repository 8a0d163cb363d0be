package server

import "google.golang.org/grpc"

// Registrar attaches one gRPC service to the server and names it, so the
// health service can report it as serving.
type Registrar interface {
	Register(s *grpc.Server)
	ServiceName() string
}
