// Package utils provides general-purpose helpers shared across the gateway:
// response writing, the resty-based HTTP client, keyed hashing, bearer token
// parsing and trace ID generation.
package utils
