package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.LibraryService = (*LibraryService)(nil)

// LibraryService implements libdoc.LibraryService using SQLite.
type LibraryService struct {
	db *DB
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{db: db}
}

// FindLibraries returns all libraries with their document counts, ordered by name.
func (s *LibraryService) FindLibraries(ctx context.Context) ([]*libdoc.Library, error) {
	var libs []*libdoc.Library
	err := s.db.view(func() error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT l.id, l.name, COUNT(d.id), l.created_at, l.updated_at
			FROM libraries l
			LEFT JOIN documents d ON d.library_id = l.id
			GROUP BY l.id
			ORDER BY l.name
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			lib, err := scanLibrary(rows)
			if err != nil {
				return err
			}
			libs = append(libs, lib)
		}
		return rows.Err()
	})
	return libs, err
}

// FindLibrary retrieves a library by name.
func (s *LibraryService) FindLibrary(ctx context.Context, name string) (*libdoc.Library, error) {
	var lib *libdoc.Library
	err := s.db.view(func() error {
		var err error
		lib, err = scanLibrary(s.db.QueryRowContext(ctx, `
			SELECT l.id, l.name, (SELECT COUNT(*) FROM documents d WHERE d.library_id = l.id), l.created_at, l.updated_at
			FROM libraries l
			WHERE l.name = ?
		`, name))
		if errors.Is(err, sql.ErrNoRows) {
			return libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", name)
		}
		return err
	})
	return lib, err
}

// DeleteLibrary removes a library and everything indexed under it.
func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) (int, error) {
	var removed int
	err := s.db.update(ctx, func(tx *sql.Tx) error {
		id, err := findLibraryID(ctx, tx, name)
		if err != nil || id == 0 {
			return err
		}

		removed, err = removeDocuments(ctx, tx, "library_id = ?", id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM libraries WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete library: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLibrary(row scanner) (*libdoc.Library, error) {
	var lib libdoc.Library
	var createdAt, updatedAt string
	if err := row.Scan(&lib.ID, &lib.Name, &lib.DocumentCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if lib.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if lib.IndexedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &lib, nil
}

// findLibraryID returns the id of the named library, or 0 when it does not exist.
func findLibraryID(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM libraries WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find library: %w", err)
	}
	return id, nil
}

// ensureLibrary returns the id of the named library, creating it if needed.
func ensureLibrary(ctx context.Context, tx *sql.Tx, name, now string) (int64, error) {
	id, err := findLibraryID(ctx, tx, name)
	if err != nil || id != 0 {
		return id, err
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO libraries (name, created_at, updated_at) VALUES (?, ?, ?)
		RETURNING id
	`, name, now, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create library: %w", err)
	}
	return id, nil
}

// touchLibrary records that the library's contents changed at now.
func touchLibrary(ctx context.Context, tx *sql.Tx, id int64, now string) error {
	if _, err := tx.ExecContext(ctx, `UPDATE libraries SET updated_at = ? WHERE id = ?`, now, id); err != nil {
		return fmt.Errorf("touch library: %w", err)
	}
	return nil
}
