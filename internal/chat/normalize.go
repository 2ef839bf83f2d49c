package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases the text and strips combining marks, so Greek words
// match regardless of accentuation ("ερώτηση" == "ερωτηση").
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, lowered)
	if err != nil {
		return lowered
	}

	return stripped
}

// Tokenize normalizes the text and splits it on anything that is not a
// letter or a digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
