// Package rest defines the JSON error envelope and response helpers shared
// by the HTTP handlers.
package rest
