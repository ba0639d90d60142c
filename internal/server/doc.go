// Package server runs the transport servers of the application.
//
// The HTTP server binds its listener synchronously so bind errors surface
// to the caller, then serves through an atomically swappable handler: until
// a router is published every request is answered with 404. The optional
// gRPC server exposes the standard health service and reports NOT_SERVING
// until the application marks itself ready.
package server
