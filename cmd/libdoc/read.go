package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	var lines libdoc.LineRange
	if c.Lines != "" {
		var err error
		if lines, err = libdoc.ParseLineRange(c.Lines); err != nil {
			return fail(deps, err)
		}
	}

	doc, err := libdoc.ResolveDocument(deps.Ctx, deps.Documents, c.Library, c.Identifier)
	if err != nil {
		if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
			fmt.Fprintln(deps.Stderr, "Tip: Use 'libdoc search' to find documents, then use the id, path, or exact title.")
			return err
		}
		return fail(deps, err)
	}

	content := doc.Body
	total := libdoc.CountLines(content)
	if c.Lines != "" {
		if content, total, err = libdoc.SliceLines(doc.Body, lines); err != nil {
			return fail(deps, err)
		}
	}

	if c.JSON {
		out := map[string]any{
			"id":         doc.ID,
			"library":    doc.Library,
			"title":      doc.Title,
			"path":       doc.Path,
			"url":        doc.URL,
			"content":    content,
			"totalLines": total,
		}
		if c.Lines != "" {
			out["lines"] = lines.String()
		}
		if doc.IsChunk() {
			out["parentPath"] = doc.ParentPath
			out["startLine"] = doc.StartLine
		}
		return writeJSON(deps.Stdout, out)
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", doc.DisplayTitle())
	if doc.URL != "" {
		fmt.Fprintf(deps.Stdout, "URL: %s\n", doc.URL)
	}
	fmt.Fprintf(deps.Stdout, "ID: %d | Path: %s\n", doc.ID, doc.Path)
	if doc.IsChunk() {
		fmt.Fprintf(deps.Stdout, "Chunk %d of %d from %s (line %d)\n", doc.ChunkIndex+1, doc.ChunkCount, doc.ParentPath, doc.StartLine)
	}
	if c.Lines != "" {
		fmt.Fprintf(deps.Stdout, "Lines: %s of %d\n", lines, total)
	}
	fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	fmt.Fprintln(deps.Stdout, content)
	return nil
}
