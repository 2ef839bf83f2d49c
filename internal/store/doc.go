// Package store persists FAQ topics and their reference questions in SQLite.
package store
