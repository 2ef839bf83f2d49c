// Package health periodically probes the resources the service depends on
// (the chatbot data file and the FAQ database) and exposes their status.
package health
