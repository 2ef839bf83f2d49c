// Package chat matches free-text Greek questions against stored FAQ
// reference questions. Text is lowercased and stripped of diacritics, split
// into tokens, and candidate references are found through an inverted token
// index before being scored by the configured strategy.
package chat
