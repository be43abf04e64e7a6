package goldmark

import (
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
	"gopkg.in/yaml.v3"
)

var _ libdoc.TitleExtractor = (*TitleExtractor)(nil)

const frontMatterDelimiter = "---"

// TitleExtractor derives document titles from YAML front-matter, the first
// level-1 heading, or the file name, in that order.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the document title and its body with any front-matter
// removed. The level-1 heading, when used, stays in the body.
func (e *TitleExtractor) ExtractTitle(raw, fallbackName string) (string, string) {
	title, rest, ok := parseFrontMatter(raw)
	if !ok {
		rest = raw
	}
	body := strings.TrimSpace(rest)

	if title == "" {
		if hs := headings([]byte(body), 1); len(hs) > 0 {
			title = hs[0].Text
		}
	}
	if title == "" {
		title = libdoc.TitleFromPath(fallbackName)
	}
	return title, body
}

// parseFrontMatter splits a leading YAML block off raw. ok is false when raw
// has no well-formed block, in which case it must be treated as plain text.
func parseFrontMatter(raw string) (title, rest string, ok bool) {
	first, remainder, found := strings.Cut(raw, "\n")
	if !found || strings.TrimRight(first, "\r") != frontMatterDelimiter {
		return "", "", false
	}

	var block []string
	for {
		line, next, more := strings.Cut(remainder, "\n")
		if strings.TrimRight(line, "\r") == frontMatterDelimiter {
			rest = next
			if !more {
				rest = ""
			}
			break
		}
		if !more {
			return "", "", false
		}
		block = append(block, line)
		remainder = next
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &meta); err != nil {
		return "", "", false
	}
	return scalarString(meta["title"]), rest, true
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
