package moderation

import (
	"strings"

	"github.com/KirkDiggler/mysterybox/internal/textmatch"
)

// defaultBlockedTerms is the offline fallback list: profanity, sexual content
// and link spam.
var defaultBlockedTerms = []string{
	"arrombado",
	"babaca",
	"buceta",
	"cacete",
	"caralho",
	"corno",
	"cuzao",
	"desgracado",
	"foda",
	"fodase",
	"foder",
	"fuder",
	"otario",
	"piroca",
	"porra",
	"puta",
	"putaria",
	"punheta",
	"vagabunda",
	"viado",
	"xoxota",
	"sexo",
	"nude",
	"nudes",
	"porn",
	"porno",
	"http",
	"https",
	"www",
}

// allowedWords are everyday words that contain a blocked term. They are cut
// out of the guess before the scan, so "computadorputa" is still caught.
var allowedWords = []string{
	"amputa",
	"computa",
	"deputa",
	"disputa",
	"imputa",
	"reputa",
	"desviado",
	"enviado",
	"notario",
}

type blocklist struct {
	terms   []string
	allowed []string
}

func newBlocklist(extra []string) *blocklist {
	seen := make(map[string]struct{})
	terms := make([]string, 0, len(defaultBlockedTerms)+len(extra))
	for _, term := range append(append([]string{}, defaultBlockedTerms...), extra...) {
		normalized := textmatch.Normalize(term)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		terms = append(terms, normalized)
	}
	return &blocklist{terms: terms, allowed: allowedWords}
}

// find returns the first blocked term contained in the normalized guess, or
// in the same text with its spaces removed.
func (b *blocklist) find(guess string) (string, bool) {
	text := textmatch.Normalize(guess)
	for _, word := range b.allowed {
		text = strings.ReplaceAll(text, word, " ")
	}
	compact := strings.ReplaceAll(text, " ", "")

	for _, term := range b.terms {
		if strings.Contains(text, term) || strings.Contains(compact, strings.ReplaceAll(term, " ", "")) {
			return term, true
		}
	}
	return "", false
}
