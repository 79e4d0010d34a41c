// Package textmatch canonicalizes free text and decides whether a guess is
// close enough to an answer to count as the same word.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are Portuguese articles and prepositions that carry no meaning
// when comparing product names.
var stopWords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {},
	"um": {}, "uma": {}, "uns": {}, "umas": {},
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"e": {}, "em": {}, "na": {}, "no": {}, "nas": {}, "nos": {},
	"para": {}, "pra": {}, "por": {}, "com": {},
}

// Normalize lowercases text, strips diacritics, turns punctuation into
// spaces, drops stop words and collapses whitespace. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Lowercase first: lowering some letters (İ) produces combining marks
	// that must be stripped in the same pass.
	lowered := strings.ToLower(text)

	// transform chains keep state, so build one per call
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, lowered)
	if err != nil {
		stripped = lowered
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, stripped)

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, word := range words {
		if _, stop := stopWords[word]; stop {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// IsStopWord reports whether word is dropped by Normalize
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
