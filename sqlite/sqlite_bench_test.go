package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/sqlite"
	"github.com/stretchr/testify/require"
)

func benchBody(i int) string {
	return fmt.Sprintf("# Page %d\n\nThis page %d covers authentication, authorization and websockets. "+
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor.", i, i)
}

// BenchmarkUpsertDocument measures indexing one document per transaction
// into a file-backed database.
func BenchmarkUpsertDocument(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.UpsertDocument(ctx, &libdoc.DocumentUpsert{
			Library: "bench",
			Path:    fmt.Sprintf("page%d.md", i),
			Chunks:  []libdoc.Chunk{{Title: fmt.Sprintf("Page %d", i), Body: benchBody(i), StartLine: 1}},
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch compares exact and prefix queries over a few hundred documents.
func BenchmarkSearch(b *testing.B) {
	const docs = 500

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	docSvc := sqlite.NewDocumentService(db)
	for i := 0; i < docs; i++ {
		_, err := docSvc.UpsertDocument(ctx, &libdoc.DocumentUpsert{
			Library: "bench",
			Path:    fmt.Sprintf("page%d.md", i),
			Chunks:  []libdoc.Chunk{{Title: fmt.Sprintf("Page %d", i), Body: benchBody(i), StartLine: 1}},
		})
		require.NoError(b, err)
	}
	search := sqlite.NewSearchService(db)

	for _, query := range []string{"websockets", "auth*", "lorem tempor"} {
		b.Run(query, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := search.Search(ctx, query, libdoc.SearchOptions{Limit: 10}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
