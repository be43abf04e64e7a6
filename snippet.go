package libdoc

import (
	"strings"
)

// Snippet defaults.
const (
	DefaultSnippetWindow   = 32
	DefaultHighlightOpen   = ">>>"
	DefaultHighlightClose  = "<<<"
	DefaultSnippetEllipsis = "..."
)

// SnippetOptions configures BuildSnippet. Zero values select the defaults.
type SnippetOptions struct {
	// Window is the excerpt length in tokens.
	Window int

	// Open and Close surround each highlighted term occurrence.
	Open  string
	Close string

	// Ellipsis marks text cut from either end of the body.
	Ellipsis string
}

func (o SnippetOptions) withDefaults() SnippetOptions {
	if o.Window <= 0 {
		o.Window = DefaultSnippetWindow
	}
	if o.Open == "" && o.Close == "" {
		o.Open, o.Close = DefaultHighlightOpen, DefaultHighlightClose
	}
	if o.Ellipsis == "" {
		o.Ellipsis = DefaultSnippetEllipsis
	}
	return o
}

// BuildSnippet extracts the window of body containing the most distinct
// matched terms, earliest window winning ties, and wraps every occurrence of
// a matched term inside it in highlight markers. A body no longer than the
// window is returned whole. When no term occurs in the body the first window
// of tokens is returned without highlights.
func BuildSnippet(body string, terms []string, opts SnippetOptions) string {
	opts = opts.withDefaults()

	matched := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		matched[strings.ToLower(term)] = struct{}{}
	}

	tokens := Tokenize(body)
	if len(tokens) <= opts.Window {
		return highlight(body, tokens, matched, opts)
	}

	start, found := densestWindow(tokens, matched, opts.Window)
	if !found {
		matched = nil
	}
	window := tokens[start : start+opts.Window]

	lo, hi := window[0].Start, window[len(window)-1].End
	shifted := make([]Token, len(window))
	for i, tok := range window {
		tok.Start -= lo
		tok.End -= lo
		shifted[i] = tok
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(opts.Ellipsis)
	}
	sb.WriteString(highlight(body[lo:hi], shifted, matched, opts))
	if start+opts.Window < len(tokens) {
		sb.WriteString(opts.Ellipsis)
	}
	return sb.String()
}

// densestWindow returns the start of the first window of size tokens with the
// most distinct matched terms, and whether any matched term occurs at all.
func densestWindow(tokens []Token, matched map[string]struct{}, size int) (int, bool) {
	counts := make(map[string]int)
	distinct := 0
	add := func(tok Token, delta int) {
		if _, ok := matched[tok.Term]; !ok {
			return
		}
		before := counts[tok.Term]
		counts[tok.Term] = before + delta
		switch {
		case before == 0 && delta > 0:
			distinct++
		case before == 1 && delta < 0:
			distinct--
		}
	}

	for _, tok := range tokens[:size] {
		add(tok, 1)
	}
	best, bestStart := distinct, 0
	for start := 1; start+size <= len(tokens); start++ {
		add(tokens[start-1], -1)
		add(tokens[start+size-1], 1)
		if distinct > best {
			best, bestStart = distinct, start
		}
	}
	return bestStart, best > 0
}

// highlight copies text, wrapping the tokens whose terms are matched.
// Token offsets are relative to text.
func highlight(text string, tokens []Token, matched map[string]struct{}, opts SnippetOptions) string {
	if len(matched) == 0 {
		return text
	}
	var sb strings.Builder
	prev := 0
	for _, tok := range tokens {
		if _, ok := matched[tok.Term]; !ok {
			continue
		}
		sb.WriteString(text[prev:tok.Start])
		sb.WriteString(opts.Open)
		sb.WriteString(text[tok.Start:tok.End])
		sb.WriteString(opts.Close)
		prev = tok.End
	}
	sb.WriteString(text[prev:])
	return sb.String()
}
