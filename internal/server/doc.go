// Package server runs the application's transport servers.
//
// It binds the HTTP API and the optional gRPC health endpoint, serves both
// until the parent context is cancelled and then shuts them down gracefully.
package server
