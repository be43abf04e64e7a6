package libdoc_test

import (
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("splits on non-alphanumeric boundaries and lower-cases", func(t *testing.T) {
		t.Parallel()

		tokens := libdoc.Tokenize("Hello, World! useState() is-great")

		assert.Equal(t, []string{"hello", "world", "usestate", "is", "great"}, termsOf(tokens))
	})

	t.Run("assigns increasing token positions", func(t *testing.T) {
		t.Parallel()

		tokens := libdoc.Tokenize("  one -- two   three ")

		require.Len(t, tokens, 3)
		for i, tok := range tokens {
			assert.Equal(t, i, tok.Position)
		}
	})

	t.Run("records byte offsets of each token", func(t *testing.T) {
		t.Parallel()

		text := "## Auth: tokens"
		tokens := libdoc.Tokenize(text)

		require.Len(t, tokens, 2)
		assert.Equal(t, "Auth", text[tokens[0].Start:tokens[0].End])
		assert.Equal(t, "tokens", text[tokens[1].Start:tokens[1].End])
	})

	t.Run("keeps unicode letters and digits", func(t *testing.T) {
		t.Parallel()

		tokens := libdoc.Tokenize("Größe 42 café-naïve")

		assert.Equal(t, []string{"größe", "42", "café", "naïve"}, termsOf(tokens))
	})

	t.Run("does not remove stop words", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"what", "is", "a", "hook"}, libdoc.Terms("What is a hook?"))
	})

	t.Run("returns nothing for separator-only input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, libdoc.Tokenize(" \n\t-*#!"))
		assert.Empty(t, libdoc.Tokenize(""))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		text := "The quick brown fox, the lazy dog."
		assert.Equal(t, libdoc.Tokenize(text), libdoc.Tokenize(text))
	})
}

func termsOf(tokens []libdoc.Token) []string {
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}
