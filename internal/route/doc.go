// Package route implements declarative route registration with per-route
// permission predicates.
package route
