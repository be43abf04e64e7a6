package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/fs"
	"github.com/fwojciec/libdoc/ingest"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	ix := deps.Indexer
	ix.Threshold = c.ChunkSize
	if c.NoChunk {
		ix.Threshold = 0
	}
	if c.Concurrency > 0 {
		ix.Concurrency = c.Concurrency
	}

	extensions, err := c.applyPreset()
	if err != nil {
		return fail(deps, err)
	}

	var result *ingest.Result
	if c.File != "" {
		result, err = c.indexStdin(deps)
	} else {
		result, err = c.indexPaths(deps, extensions)
	}
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		if err := writeJSON(deps.Stdout, struct {
			Library string `json:"library"`
			*ingest.Result
		}{c.Library, result}); err != nil {
			return err
		}
	} else {
		for _, f := range result.Failures {
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", f.Path, message(f.Err))
		}
		fmt.Fprintf(deps.Stdout, "Indexed %d documents (%d chunks) into %q: %d unchanged, %d skipped, %d failed\n",
			result.Indexed, result.Chunks, c.Library, result.Unchanged, result.Skipped, len(result.Failures))
	}

	if err := result.Err(); err != nil {
		return fail(deps, err)
	}
	return nil
}

// applyPreset fills in the base URL and strip prefix the flags leave empty
// and returns the extensions to walk. With a preset, the single path (or
// the working directory) is a checkout of the preset's repository, and its
// documentation directory is indexed.
func (c *IndexCmd) applyPreset() ([]string, error) {
	if c.Preset == "" {
		return nil, nil
	}
	p, err := libdoc.FindPreset(c.Preset)
	if err != nil {
		return nil, err
	}

	if c.BaseURL == "" {
		c.BaseURL = p.BaseURL
	}
	if c.File != "" {
		return p.Extensions, nil
	}

	root := "."
	switch len(c.Paths) {
	case 0:
	case 1:
		root = c.Paths[0]
	default:
		return nil, libdoc.Errorf(libdoc.EINVALID, "--preset takes a single repository checkout, got %d paths", len(c.Paths))
	}
	docs := filepath.Join(root, p.DocsPath)
	c.Paths = []string{docs}
	if c.StripPrefix == "" {
		c.StripPrefix = docs
	}
	return p.Extensions, nil
}

func (c *IndexCmd) indexStdin(deps *Dependencies) (*ingest.Result, error) {
	content, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "no content provided on stdin")
	}

	src := &libdoc.Source{
		Path:    fs.StripPrefix(c.File, c.StripPrefix),
		Content: string(content),
		Title:   c.Title,
		URL:     c.URL,
		Format:  libdoc.FormatMarkdown,
	}
	if src.URL == "" {
		src.URL = fs.PathToURL(c.BaseURL, src.Path)
	}
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".html", ".htm":
		src.Format = libdoc.FormatHTML
	}
	return deps.Indexer.IndexSources(deps.Ctx, c.Library, []*libdoc.Source{src}, nil)
}

func (c *IndexCmd) indexPaths(deps *Dependencies, extensions []string) (*ingest.Result, error) {
	locations := c.Paths
	if len(locations) == 0 {
		var err error
		if locations, err = readLines(deps.Stdin); err != nil {
			return nil, err
		}
	}
	if len(locations) == 0 {
		return nil, libdoc.Errorf(libdoc.EINVALID, "no paths given; pass files or directories, or pipe paths on stdin")
	}

	files, err := fs.Expand(locations, extensions...)
	if err != nil {
		return nil, err
	}

	deps.Indexer.Loader = fs.NewLoader(c.StripPrefix, c.BaseURL)

	var bar *progressBar
	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			if !c.JSON {
				bar = newProgressBar(deps.Stderr, event.Total)
			}
		case ingest.ProgressCompleted, ingest.ProgressSkipped, ingest.ProgressFailed:
			if bar != nil {
				bar.update(event.Completed)
			}
		}
	}
	return deps.Indexer.IndexPaths(deps.Ctx, c.Library, files, progress)
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
