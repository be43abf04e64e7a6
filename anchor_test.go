package libdoc_test

import (
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	t.Parallel()

	t.Run("generates URL-safe anchors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "getting-started-with-go", libdoc.Anchor("Getting Started With Go"))
	})

	t.Run("strips special characters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "api-reference-v20", libdoc.Anchor("API Reference (v2.0)"))
	})

	t.Run("collapses runs of spaces and hyphens", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a-b-c", libdoc.Anchor("  a -- b   c - "))
	})

	t.Run("returns empty string for punctuation only", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, libdoc.Anchor("!?"))
	})
}
