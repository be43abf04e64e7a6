package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/libdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want goquery.Framework
	}{
		{
			name: "Docusaurus skip link",
			html: `<body><a id="__docusaurus_skipToContent_fallback" href="#x">Skip</a></body>`,
			want: goquery.FrameworkDocusaurus,
		},
		{
			name: "MkDocs color scheme",
			html: `<body data-md-color-scheme="default"><p>x</p></body>`,
			want: goquery.FrameworkMkDocs,
		},
		{
			name: "Sphinx read the docs sidebar",
			html: `<body><nav class="wy-nav-side"></nav></body>`,
			want: goquery.FrameworkSphinx,
		},
		{
			name: "VitePress content",
			html: `<body><div id="VPContent"><div class="vp-doc">x</div></div></body>`,
			want: goquery.FrameworkVitePress,
		},
		{
			name: "VuePress content",
			html: `<body><div class="theme-default-content">x</div></body>`,
			want: goquery.FrameworkVuePress,
		},
		{
			name: "GitBook sidebar",
			html: `<body><aside data-testid="space.sidebar"></aside></body>`,
			want: goquery.FrameworkGitBook,
		},
		{
			name: "Nextra navbar",
			html: `<body><div class="nextra-navbar"></div></body>`,
			want: goquery.FrameworkNextra,
		},
		{
			name: "meta generator wins over markers",
			html: `<head><meta name="generator" content="Sphinx 7.2.6"></head><body><div class="nextra-toc"></div></body>`,
			want: goquery.FrameworkSphinx,
		},
		{
			name: "VitePress generator",
			html: `<head><meta name="generator" content="VitePress v1.0.0"></head><body></body>`,
			want: goquery.FrameworkVitePress,
		},
		{
			name: "plain page",
			html: `<body><main><p>Hello</p></main></body>`,
			want: goquery.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.Detect(parse(t, tt.html)))
		})
	}
}
