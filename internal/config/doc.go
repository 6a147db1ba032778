// Package config provides configuration loading, merging, and validation
// facilities for the gateway.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources take precedence for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. A dotenv file (only fills variables absent from the environment)
//
// The main entry point is [GetStructuredConfig]. A configuration that fails
// validation is never returned: startup must stop before any listener binds.
package config
