package goquery

import (
	"html"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/libdoc"
)

// Ensure ContentExtractor implements libdoc.ContentExtractor at compile time.
var _ libdoc.ContentExtractor = (*ContentExtractor)(nil)

// contentSelectors locate the article body per framework, most specific first.
var contentSelectors = map[Framework][]string{
	FrameworkDocusaurus: {".theme-doc-markdown", "article"},
	FrameworkMkDocs:     {"article.md-content__inner", ".md-content"},
	FrameworkSphinx:     {"[itemprop='articleBody']", "div[role='main']", "div.body"},
	FrameworkVitePress:  {".vp-doc"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"main"},
	FrameworkNextra:     {"article", "main"},
}

var genericSelectors = []string{"main article", "article", "main", "[role='main']", ".content", ".doc-content"}

// chrome is removed from the selected content.
const chrome = "script, style, noscript, template, nav, aside, footer, header:not(:has(h1)), " +
	"[role='navigation'], .toc, .table-of-contents, .headerlink, .hash-link, .edit-this-page, " +
	".md-source-file, .theme-doc-footer, .pagination-nav"

// ContentExtractor selects the main content of documentation pages,
// using framework-specific selectors when the generator is recognized.
type ContentExtractor struct {
	// Fallback, if set, extracts pages of an unrecognized generator that
	// have no known content region. Without it, or when it fails, the
	// whole body is used.
	Fallback libdoc.ContentExtractor
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// ExtractContent returns the HTML of the page's main content with
// navigation chrome removed. Pages without a recognizable content region
// fall back to the whole body.
func (e *ContentExtractor) ExtractContent(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", libdoc.Errorf(libdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	framework := Detect(doc)
	content, ok := selectContent(doc, slices.Concat(contentSelectors[framework], genericSelectors))
	if !ok && framework == FrameworkUnknown && e.Fallback != nil {
		if out, err := e.Fallback.ExtractContent(page); err == nil && strings.TrimSpace(out) != "" {
			return out, nil
		}
	}
	content.Find(chrome).Remove()

	out, err := content.Html()
	if err != nil {
		return "", libdoc.Errorf(libdoc.EINTERNAL, "render content: %v", err)
	}
	// Keep the page title findable when the content has no heading.
	if content.Find("h1").Length() == 0 {
		if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
			out = "<h1>" + html.EscapeString(title) + "</h1>\n" + out
		}
	}
	return out, nil
}

// selectContent returns the first selector match with text, or the body
// and false when none has any.
func selectContent(doc *goquery.Document, selectors []string) (*goquery.Selection, bool) {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 && strings.TrimSpace(s.Text()) != "" {
			return s, true
		}
	}
	return doc.Find("body").First(), false
}
