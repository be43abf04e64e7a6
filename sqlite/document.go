package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements libdoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = `d.id, l.name, d.path, d.parent_path, d.chunk_index, d.chunk_count, d.title, d.url,
	d.content_hash, d.char_offset, d.start_line, d.created_at, d.updated_at`

// UpsertDocument replaces every row derived from the upsert's path in a
// single transaction. Re-uploading identical content leaves the rows, their
// ids and timestamps untouched.
func (s *DocumentService) UpsertDocument(ctx context.Context, upsert *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
	if err := upsert.Validate(); err != nil {
		return nil, err
	}

	docs := upsert.Documents()
	for _, doc := range docs {
		doc.ContentHash = hashContent(doc.Body)
	}

	unchanged := false
	err := s.db.update(ctx, func(tx *sql.Tx) error {
		now := s.db.now()
		libraryID, err := ensureLibrary(ctx, tx, upsert.Library, now)
		if err != nil {
			return err
		}

		existing, err := findFamily(ctx, tx, libraryID, upsert.Path)
		if err != nil {
			return err
		}
		if sameFamily(existing, docs) {
			for i, doc := range existing {
				doc.Body = docs[i].Body
			}
			docs = existing
			unchanged = true
			return errUnchanged
		}

		createdAt := now
		for _, doc := range existing {
			if c := doc.CreatedAt.UTC().Format(time.RFC3339); c < createdAt {
				createdAt = c
			}
		}

		if _, err := removeDocuments(ctx, tx, "library_id = ? AND parent_path = ?", libraryID, upsert.Path); err != nil {
			return err
		}
		if err := claimPaths(ctx, tx, libraryID, docs); err != nil {
			return err
		}

		for _, doc := range docs {
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO documents (library_id, path, parent_path, chunk_index, chunk_count, title, url, body,
					content_hash, char_offset, start_line, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				RETURNING id
			`, libraryID, doc.Path, doc.ParentPath, doc.ChunkIndex, doc.ChunkCount, doc.Title, doc.URL, doc.Body,
				doc.ContentHash, doc.Offset, doc.StartLine, createdAt, now).Scan(&doc.ID); err != nil {
				return fmt.Errorf("insert document %s: %w", doc.Path, err)
			}
			if _, _, err := indexDocument(ctx, tx, doc.ID, doc.Title, doc.Body); err != nil {
				return err
			}
			if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
				return err
			}
			if doc.UpdatedAt, err = parseRFC3339(now, "updated_at"); err != nil {
				return err
			}
		}

		return touchLibrary(ctx, tx, libraryID, now)
	})
	if err != nil {
		return nil, err
	}
	return &libdoc.UpsertResult{Documents: docs, Unchanged: unchanged}, nil
}

// claimPaths returns ECONFLICT if a row of another source already holds
// one of the paths of docs, as when "a.md#1" was indexed as a file of its
// own and "a.md" now splits into chunks.
func claimPaths(ctx context.Context, tx *sql.Tx, libraryID int64, docs []*libdoc.Document) error {
	for _, doc := range docs {
		var owner string
		err := tx.QueryRowContext(ctx, `
			SELECT parent_path FROM documents WHERE library_id = ? AND path = ?
		`, libraryID, doc.Path).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		} else if err != nil {
			return fmt.Errorf("check path %s: %w", doc.Path, err)
		}
		if owner == doc.Path {
			return libdoc.Errorf(libdoc.ECONFLICT, "path %q is already indexed as a separate document", doc.Path)
		}
		return libdoc.Errorf(libdoc.ECONFLICT, "path %q is already taken by a chunk of %q", doc.Path, owner)
	}
	return nil
}

// findFamily loads the rows derived from one source path, in chunk order.
func findFamily(ctx context.Context, tx *sql.Tx, libraryID int64, parentPath string) ([]*libdoc.Document, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents d JOIN libraries l ON l.id = d.library_id
		WHERE d.library_id = ? AND d.parent_path = ?
		ORDER BY d.chunk_index, d.path
	`, libraryID, parentPath)
	if err != nil {
		return nil, fmt.Errorf("find existing documents: %w", err)
	}
	defer rows.Close()

	var docs []*libdoc.Document
	for rows.Next() {
		doc, err := scanDocument(rows, false)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// sameFamily reports whether the stored rows already hold exactly the new set.
func sameFamily(existing, docs []*libdoc.Document) bool {
	if len(existing) != len(docs) {
		return false
	}
	for i, old := range existing {
		doc := docs[i]
		if old.Path != doc.Path || old.Title != doc.Title || old.URL != doc.URL ||
			old.ContentHash != doc.ContentHash || old.Offset != doc.Offset ||
			old.StartLine != doc.StartLine || old.ChunkIndex != doc.ChunkIndex ||
			old.ChunkCount != doc.ChunkCount {
			return false
		}
	}
	return true
}

// FindDocument retrieves one document, body included. An empty library
// searches every library.
func (s *DocumentService) FindDocument(ctx context.Context, library string, lookup libdoc.Lookup) (*libdoc.Document, error) {
	var where string
	var arg any
	switch lookup.Kind {
	case libdoc.LookupByID:
		where, arg = "d.id = ?", lookup.ID
	case libdoc.LookupByPath:
		where, arg = "d.path = ?", lookup.Value
	case libdoc.LookupByTitle:
		where, arg = "d.title = ?", lookup.Value
	default:
		return nil, libdoc.Errorf(libdoc.EINVALID, "unsupported lookup kind %d", lookup.Kind)
	}

	var doc *libdoc.Document
	err := s.db.view(func() error {
		query := `SELECT ` + documentColumns + `, d.body
			FROM documents d JOIN libraries l ON l.id = d.library_id
			WHERE ` + where
		args := []any{arg}
		if library != "" {
			id, err := findLibraryID(ctx, s.db, library)
			if err != nil {
				return err
			}
			if id == 0 {
				return libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", library)
			}
			query += " AND d.library_id = ?"
			args = append(args, id)
		}
		query += " ORDER BY l.name, d.path"

		matches, err := s.queryDocuments(ctx, query, args, true)
		if err != nil {
			return err
		}
		switch len(matches) {
		case 0:
			return libdoc.Errorf(libdoc.ENOTFOUND, "no document with %s", lookup)
		case 1:
			doc = matches[0]
			return nil
		default:
			paths := make([]string, len(matches))
			for i, m := range matches {
				paths[i] = m.Path
			}
			return libdoc.Errorf(libdoc.ENOTFOUND, "%s matches %d documents (%s); use the id or path instead",
				lookup, len(matches), strings.Join(paths, ", "))
		}
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves document metadata, without bodies, ordered by path.
func (s *DocumentService) FindDocuments(ctx context.Context, filter libdoc.DocumentFilter) ([]*libdoc.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + documentColumns + ` FROM documents d JOIN libraries l ON l.id = d.library_id WHERE 1=1`)
	if filter.Library != nil {
		query.WriteString(" AND l.name = ?")
		args = append(args, *filter.Library)
	}
	if filter.ParentPath != nil {
		query.WriteString(" AND d.parent_path = ?")
		args = append(args, *filter.ParentPath)
	}
	query.WriteString(" ORDER BY l.name, d.path")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	var docs []*libdoc.Document
	err := s.db.view(func() error {
		var err error
		docs, err = s.queryDocuments(ctx, query.String(), args, false)
		return err
	})
	return docs, err
}

func (s *DocumentService) queryDocuments(ctx context.Context, query string, args []any, withBody bool) ([]*libdoc.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*libdoc.Document
	for rows.Next() {
		doc, err := scanDocument(rows, withBody)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// scanDocument scans documentColumns, followed by d.body when withBody is set.
func scanDocument(row scanner, withBody bool) (*libdoc.Document, error) {
	var doc libdoc.Document
	var createdAt, updatedAt string
	dest := []any{&doc.ID, &doc.Library, &doc.Path, &doc.ParentPath, &doc.ChunkIndex, &doc.ChunkCount,
		&doc.Title, &doc.URL, &doc.ContentHash, &doc.Offset, &doc.StartLine, &createdAt, &updatedAt}
	if withBody {
		dest = append(dest, &doc.Body)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}
