// Package config provides configuration loading, merging, and validation
// for the bootstrap server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields that remain zero receive package defaults (port 3333, 50 MB body
// limit, unbounded parameter count). The entry point is [GetStructuredConfig].
package config
