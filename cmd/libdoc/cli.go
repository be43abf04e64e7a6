package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Color enables ANSI highlighting of search matches.
	Color bool

	Libraries  libdoc.LibraryService
	Documents  libdoc.DocumentService
	Search     libdoc.SearchService
	Statistics libdoc.StatisticsService
	Indexer    *ingest.Indexer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" env:"LIBDOC_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Index   IndexCmd   `cmd:"" help:"Index documentation files into a library"`
	Search  SearchCmd  `cmd:"" help:"Search indexed documentation"`
	List    ListCmd    `cmd:"" help:"List indexed libraries"`
	Docs    DocsCmd    `cmd:"" help:"List documents in a library"`
	Read    ReadCmd    `cmd:"" help:"Read a document by id, path or title"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a library and its documents"`
	Rebuild RebuildCmd `cmd:"" help:"Recompute index statistics or rebuild the whole index"`
	Export  ExportCmd  `cmd:"" help:"Write a library's documents to a directory"`
	Presets PresetsCmd `cmd:"" help:"List library presets or show one"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Library string   `arg:"" help:"Library name"`
	Paths   []string `arg:"" optional:"" help:"Files or directories to index (read from stdin when omitted)"`

	File  string `short:"f" help:"Index content from stdin as a single document at this path"`
	Title string `short:"t" help:"Document title for --file (extracted when omitted)"`
	URL   string `short:"u" name:"url" help:"Source URL for --file"`

	Preset      string `short:"p" help:"Library preset (see 'libdoc presets'); paths name a checkout of its repository"`
	StripPrefix string `name:"strip-prefix" help:"Prefix removed from file paths before storing them"`
	BaseURL     string `name:"base-url" help:"Base URL used to build document URLs from paths"`
	ChunkSize   int    `name:"chunk-size" env:"LIBDOC_CHUNK_SIZE" default:"8000" help:"Split documents longer than this many characters at their level-2 headings"`
	NoChunk     bool   `name:"no-chunk" help:"Never split documents"`
	Concurrency int    `short:"c" default:"8" help:"Documents prepared in parallel"`
	JSON        bool   `short:"j" name:"json" help:"Output as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query (words are OR'd; end the last one with * for prefix matching)"`
	Library string `short:"l" help:"Filter by library name"`
	Limit   int    `short:"n" default:"10" help:"Maximum number of results"`
	JSON    bool   `short:"j" name:"json" help:"Output as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	JSON bool `short:"j" name:"json" help:"Output as JSON"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Library string `arg:"" help:"Library name"`
	Limit   int    `short:"n" help:"Maximum number of documents (0 for all)"`
	Offset  int    `help:"Number of documents to skip"`
	JSON    bool   `short:"j" name:"json" help:"Output as JSON"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	Library    string `arg:"" help:"Library name"`
	Identifier string `arg:"" help:"Document id, path or exact title"`
	Lines      string `help:"Line range to return (e.g., 1-50)"`
	JSON       bool   `short:"j" name:"json" help:"Output as JSON with metadata"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Library string `arg:"" help:"Library name"`
	Force   bool   `help:"Confirm deletion"`
}

// RebuildCmd is the "rebuild" subcommand.
type RebuildCmd struct {
	Index bool `help:"Re-tokenize every document instead of only recomputing statistics"`
	JSON  bool `short:"j" name:"json" help:"Output as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Library string `arg:"" help:"Library name"`
	Dir     string `short:"o" default:"." help:"Parent directory; files are written to <dir>/<library>"`
}

// PresetsCmd is the "presets" subcommand.
type PresetsCmd struct {
	Name string `arg:"" optional:"" help:"Preset to show"`
	JSON bool   `short:"j" name:"json" help:"Output as JSON"`
}
