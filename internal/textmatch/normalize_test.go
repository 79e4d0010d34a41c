package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lowercases", input: "GELADEIRA", expected: "geladeira"},
		{name: "strips accents", input: "Fogão Elétrico", expected: "fogao eletrico"},
		{name: "drops articles", input: "A Geladeira", expected: "geladeira"},
		{name: "drops prepositions", input: "Máquina de Lavar", expected: "maquina lavar"},
		{name: "collapses whitespace", input: "  fogão   DO   chef ", expected: "fogao chef"},
		{name: "punctuation becomes space", input: "geladeira, frost-free!", expected: "geladeira frost free"},
		{name: "only stop words", input: "de da do", expected: ""},
		{name: "dotted capital i", input: "İstanbul", expected: "istanbul"},
		{name: "keeps digits", input: "TV 50 polegadas", expected: "tv 50 polegadas"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Geladeira Frost Free",
		"  A   máquina de LAVAR roupa ",
		"ÇÃÕ áéíóú âêô à",
		"micro-ondas/forno",
		"İIıi ǅ ß",
		"e a o de",
		"fogão\t4\nbocas",
		"café-com-leite",
		"ñandú",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("de"))
	assert.True(t, IsStopWord("uma"))
	assert.False(t, IsStopWord("geladeira"))
}
