// Package requestlog implements the append-only request log file written by
// the chatbot REST handlers. One line per event, prefixed with a timestamp;
// no rotation and no size bound.
package requestlog
