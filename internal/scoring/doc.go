// Package scoring defines the text-similarity strategy interface used by the
// chat matcher and implements the available algorithms:
//
//   - Jaccard: set overlap of the normalized tokens
//   - Ratio: sequence similarity (2*M/T over the joined token strings)
//
// Both operate on tokens already normalized by the chat package.
package scoring
