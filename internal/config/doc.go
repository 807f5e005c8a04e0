// Package config provides configuration loading, merging, and validation
// facilities for the warehouse-keeper server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Unset fields then take built-in defaults. The entry point is
// [GetStructuredConfig].
package config
