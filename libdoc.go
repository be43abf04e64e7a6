// Package libdoc provides a local, CLI-based index of library documentation.
// It splits documentation pages into heading-bounded chunks, maintains an
// inverted index over them in SQLite, and answers ranked keyword queries with
// highlighted snippets.
//
// This package contains domain types, interfaces and the pure indexing and
// ranking algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, goldmark/, htmltomarkdown/).
package libdoc
