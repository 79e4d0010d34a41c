package textmatch

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// lowConfidence is reported for guesses outside the tolerance
const lowConfidence = 0.1

// Result is the outcome of comparing a guess with an answer
type Result struct {
	// NormalizedGuess is the guess after Normalize
	NormalizedGuess string

	// NormalizedAnswer is the answer after Normalize
	NormalizedAnswer string

	// Distance is the Levenshtein distance between the normalized strings
	Distance int

	// Tolerance is the maximum distance accepted for this answer length
	Tolerance int

	// IsCorrect reports whether the guess is within tolerance
	IsCorrect bool

	// Confidence is 1 - distance/length for correct guesses and a fixed low value otherwise
	Confidence float64
}

// Tolerance returns the accepted edit distance for a normalized answer of the
// given rune length.
func Tolerance(length int) int {
	switch {
	case length <= 5:
		return 1
	case length <= 10:
		return 2
	default:
		return 3
	}
}

// Distance returns the Levenshtein distance between the normalized forms of a and b
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(Normalize(a), Normalize(b))
}

// Match compares a guess against an answer with a length scaled tolerance
func Match(guess, answer string) Result {
	normalizedGuess := Normalize(guess)
	normalizedAnswer := Normalize(answer)
	length := utf8.RuneCountInString(normalizedAnswer)

	result := Result{
		NormalizedGuess:  normalizedGuess,
		NormalizedAnswer: normalizedAnswer,
		Distance:         edlib.LevenshteinDistance(normalizedGuess, normalizedAnswer),
		Tolerance:        Tolerance(length),
		Confidence:       lowConfidence,
	}

	// an empty guess or answer never matches, even within tolerance
	if normalizedGuess == "" || length == 0 {
		return result
	}

	if result.Distance <= result.Tolerance {
		result.IsCorrect = true
		result.Confidence = 1 - float64(result.Distance)/float64(length)
	}

	return result
}
