package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	if _, err := deps.Libraries.FindLibrary(deps.Ctx, c.Library); err != nil {
		if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'libdoc list' to see available libraries.\n", libdoc.ErrorMessage(err))
			return err
		}
		return fail(deps, err)
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, libdoc.DocumentFilter{
		Library: &c.Library,
		Offset:  c.Offset,
		Limit:   c.Limit,
	})
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		return writeJSON(deps.Stdout, map[string]any{
			"library":   c.Library,
			"documents": docs,
			"count":     len(docs),
		})
	}

	fmt.Fprintf(deps.Stdout, "Documents in %s (%d):\n\n", c.Library, len(docs))
	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "  %d  %s  %s\n", doc.ID, doc.Path, doc.DisplayTitle())
	}
	return nil
}
