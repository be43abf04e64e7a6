package libdoc

import (
	"context"
	"time"
)

// Library represents a named collection of indexed documents, such as
// "react" or "react-18". Names are case-sensitive.
type Library struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	DocumentCount int       `json:"docCount"`
	CreatedAt     time.Time `json:"createdAt"`
	IndexedAt     time.Time `json:"indexedAt"`
}

// LibraryService represents a service for managing libraries.
type LibraryService interface {
	// FindLibraries returns all libraries ordered by name.
	FindLibraries(ctx context.Context) ([]*Library, error)

	// FindLibrary retrieves a library by name.
	// Returns ENOTFOUND if the library does not exist.
	FindLibrary(ctx context.Context, name string) (*Library, error)

	// DeleteLibrary removes a library with all of its documents and postings
	// and returns the number of documents removed. Deleting an unknown
	// library removes nothing and is not an error.
	DeleteLibrary(ctx context.Context, name string) (int, error)
}
