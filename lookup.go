package libdoc

import (
	"context"
	"strconv"
	"strings"
)

// LookupKind identifies how a Lookup selects a document.
type LookupKind int

// LookupKind constants.
const (
	LookupByID LookupKind = iota + 1
	LookupByPath
	LookupByTitle
)

// String returns the lookup kind name.
func (k LookupKind) String() string {
	switch k {
	case LookupByID:
		return "id"
	case LookupByPath:
		return "path"
	case LookupByTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Lookup is a request for a single document by id, exact path, or exact
// case-sensitive title.
type Lookup struct {
	Kind  LookupKind
	ID    int64
	Value string
}

// ByID returns a lookup by document id.
func ByID(id int64) Lookup { return Lookup{Kind: LookupByID, ID: id} }

// ByPath returns a lookup by exact document path.
func ByPath(path string) Lookup { return Lookup{Kind: LookupByPath, Value: path} }

// ByTitle returns a lookup by exact title.
func ByTitle(title string) Lookup { return Lookup{Kind: LookupByTitle, Value: title} }

// String returns a human-readable form of the lookup.
func (l Lookup) String() string {
	if l.Kind == LookupByID {
		return "id " + strconv.FormatInt(l.ID, 10)
	}
	return l.Kind.String() + " " + strconv.Quote(l.Value)
}

// ParseIdentifier returns the lookups an identifier may denote, in the order
// they should be tried: id (when numeric), then path, then title.
func ParseIdentifier(identifier string) []Lookup {
	if strings.TrimSpace(identifier) == "" {
		return nil
	}
	var lookups []Lookup
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil && id > 0 {
		lookups = append(lookups, ByID(id))
	}
	return append(lookups, ByPath(identifier), ByTitle(identifier))
}

// ResolveDocument finds a document of library by id, path, or title, trying
// each interpretation of identifier in turn. When nothing matches it returns
// the most specific ENOTFOUND error, so an ambiguous title is reported as such
// rather than as a plain miss.
func ResolveDocument(ctx context.Context, finder DocumentFinder, library, identifier string) (*Document, error) {
	lookups := ParseIdentifier(identifier)
	if len(lookups) == 0 {
		return nil, Errorf(EINVALID, "document identifier required")
	}

	var notFound error
	for _, lookup := range lookups {
		doc, err := finder.FindDocument(ctx, library, lookup)
		if err == nil {
			return doc, nil
		}
		if ErrorCode(err) != ENOTFOUND {
			return nil, err
		}
		notFound = err
	}
	return nil, notFound
}
