package libdoc

import (
	"strings"
	"unicode"
)

// Token is a normalized term and where it occurred in the source text.
type Token struct {
	// Term is the lower-cased token text.
	Term string

	// Position is the 0-based index of the token in the token sequence.
	Position int

	// Start and End are byte offsets of the token in the source text.
	Start int
	End   int
}

// Tokenize breaks text into lower-cased terms. Unicode letters and digits are
// token constituents; every other character is a separator. Stop words are
// kept so that queries for short words such as "is" still match.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, text, start, i)
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, text, start, len(text))
	}
	return tokens
}

// Terms returns just the terms of Tokenize(text).
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}

func appendToken(tokens []Token, text string, start, end int) []Token {
	return append(tokens, Token{
		Term:     strings.ToLower(text[start:end]),
		Position: len(tokens),
		Start:    start,
		End:      end,
	})
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
