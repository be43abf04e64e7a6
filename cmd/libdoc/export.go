package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if _, err := deps.Libraries.FindLibrary(deps.Ctx, c.Library); err != nil {
		return fail(deps, err)
	}

	rows, err := deps.Documents.FindDocuments(deps.Ctx, libdoc.DocumentFilter{Library: &c.Library})
	if err != nil {
		return fail(deps, err)
	}

	exp := fs.NewExporter(c.Dir, c.Library)
	n, err := c.save(deps, exp, rows)
	if err != nil {
		_ = exp.Abort()
		return fail(deps, err)
	}
	if err := exp.Commit(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", n, exp.Dir())
	return nil
}

// save writes one file per source document, joining chunk rows back
// together. rows are ordered by path, so chunks of a file need not be
// adjacent ("a.md#10" sorts before "a.md#2").
func (c *ExportCmd) save(deps *Dependencies, exp *fs.Exporter, rows []*libdoc.Document) (int, error) {
	var order []string
	groups := make(map[string][]*libdoc.Document)
	for _, row := range rows {
		if _, ok := groups[row.ParentPath]; !ok {
			order = append(order, row.ParentPath)
		}
		doc, err := deps.Documents.FindDocument(deps.Ctx, c.Library, libdoc.ByID(row.ID))
		if err != nil {
			return 0, err
		}
		groups[row.ParentPath] = append(groups[row.ParentPath], doc)
	}

	for _, parent := range order {
		doc, err := libdoc.JoinChunks(groups[parent])
		if err != nil {
			return 0, err
		}
		if err := exp.Save(deps.Ctx, doc); err != nil {
			return 0, err
		}
	}
	return len(order), nil
}
