// Package goldmark implements title extraction and heading-based chunking
// on top of the goldmark markdown parser.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// heading is an ATX heading found at the top level of a document.
type heading struct {
	// Start is the byte offset of the line the heading is written on.
	Start int
	Text  string
}

// headings returns the top-level ATX headings of the given level, in
// document order. Only headings written flush-left as a run of exactly
// level '#' characters followed by a space qualify, so headings in code
// blocks, block quotes, lists and setext headings are ignored.
func headings(source []byte, level int) []heading {
	marker := []byte(strings.Repeat("#", level) + " ")
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var out []heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != level || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := bytes.LastIndexByte(source[:seg.Start], '\n') + 1
		if !bytes.HasPrefix(source[start:], marker) {
			continue
		}
		var buf bytes.Buffer
		for i := 0; i < h.Lines().Len(); i++ {
			line := h.Lines().At(i)
			buf.Write(line.Value(source))
		}
		out = append(out, heading{Start: start, Text: strings.TrimSpace(buf.String())})
	}
	return out
}
