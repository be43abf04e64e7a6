package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
)

type searchHit struct {
	ID      int64   `json:"id"`
	Library string  `json:"library"`
	Path    string  `json:"path"`
	Title   string  `json:"title"`
	URL     string  `json:"url,omitempty"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Search(deps.Ctx, c.Query, libdoc.SearchOptions{
		Library: c.Library,
		Limit:   c.Limit,
	})
	if libdoc.ErrorCode(err) == libdoc.ENOTFOUND && c.Library != "" {
		return c.unknownLibrary(deps, err)
	}
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		hits := make([]searchHit, len(results))
		for i, r := range results {
			hits[i] = searchHit{
				ID:      r.Document.ID,
				Library: r.Document.Library,
				Path:    r.Document.Path,
				Title:   r.Document.Title,
				URL:     r.Document.URL,
				Score:   r.Score,
				Snippet: r.Snippet,
			}
		}
		return writeJSON(deps.Stdout, map[string]any{
			"query":   c.Query,
			"results": hits,
			"count":   len(hits),
		})
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results found for %q.\n", c.Query)
		return nil
	}

	hlOpen, hlClose := "", ""
	if deps.Color {
		hlOpen, hlClose = ansiBold, ansiReset
	}

	scope := ""
	if c.Library != "" {
		scope = fmt.Sprintf(" in %q", c.Library)
	}
	fmt.Fprintf(deps.Stdout, "Found %d result(s) for %q%s:\n\n", len(results), c.Query, scope)
	for i, r := range results {
		doc := r.Document
		fmt.Fprintf(deps.Stdout, "%d. [%s] %s\n", i+1, doc.Library, doc.DisplayTitle())
		fmt.Fprintf(deps.Stdout, "   id %d | %s\n", doc.ID, doc.Path)
		if doc.URL != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", doc.URL)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n\n", libdoc.FormatSnippet(r.Snippet, hlOpen, hlClose))
	}
	return nil
}

// unknownLibrary reports err along with the libraries that do exist.
func (c *SearchCmd) unknownLibrary(deps *Dependencies, err error) error {
	libs, lerr := deps.Libraries.FindLibraries(deps.Ctx)
	if lerr != nil {
		return fail(deps, lerr)
	}
	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.Name
	}

	if c.JSON {
		if werr := writeJSON(deps.Stdout, map[string]any{
			"error":     libdoc.ErrorMessage(err),
			"available": names,
		}); werr != nil {
			return werr
		}
		return err
	}

	fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
	if len(names) == 0 {
		fmt.Fprintln(deps.Stderr, "No libraries indexed yet. Use 'libdoc index' to add one.")
	} else {
		fmt.Fprintf(deps.Stderr, "Available libraries: %s\n", strings.Join(names, ", "))
	}
	return err
}
