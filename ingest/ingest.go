// Package ingest orchestrates batch indexing: documents are prepared
// concurrently and committed one at a time, in input order.
package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/libdoc"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents prepared in parallel.
const DefaultConcurrency = 8

// Indexer turns raw sources into committed documents.
type Indexer struct {
	Documents libdoc.DocumentService
	Titles    libdoc.TitleExtractor
	Chunker   libdoc.Chunker

	// Converter turns HTML sources into markdown. Optional; without it
	// HTML sources fail.
	Converter libdoc.Converter

	// Extractor narrows HTML sources to their main content before
	// conversion. Optional.
	Extractor libdoc.ContentExtractor

	// Loader reads sources for IndexPaths.
	Loader libdoc.SourceLoader

	// Threshold is the chunking threshold in characters; <= 0 disables chunking.
	Threshold   int
	Concurrency int
	Logger      *slog.Logger
}

// Result holds the outcome of a batch.
type Result struct {
	RunID string `json:"runId"`

	// Indexed counts sources whose rows were written.
	Indexed int `json:"indexed"`

	// Chunks counts the document rows written for indexed sources.
	Chunks int `json:"chunks"`

	// Unchanged counts sources whose stored rows already matched.
	Unchanged int `json:"unchanged"`

	// Skipped counts sources with no indexable content.
	Skipped int `json:"skipped"`

	Failures []Failure `json:"failures"`
}

// Failure records a source that could not be indexed.
type Failure struct {
	Path    string `json:"path"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Total returns the number of sources the batch processed.
func (r *Result) Total() int {
	return r.Indexed + r.Unchanged + r.Skipped + len(r.Failures)
}

// Err returns EPARTIAL when any source failed.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return libdoc.Errorf(libdoc.EPARTIAL, "%d of %d documents failed to index", len(r.Failures), r.Total())
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// prepared is one source ready to commit, in input order.
type prepared struct {
	position int
	path     string
	upsert   *libdoc.DocumentUpsert
	skipped  bool
	err      error
}

// IndexSources indexes in-memory sources into library.
func (ix *Indexer) IndexSources(ctx context.Context, library string, sources []*libdoc.Source, progress ProgressFunc) (*Result, error) {
	return ix.run(ctx, library, len(sources), func(_ context.Context, i int) (string, *libdoc.Source, error) {
		if sources[i] == nil {
			return "", nil, libdoc.Errorf(libdoc.EINVALID, "source %d is nil", i)
		}
		return sources[i].Path, sources[i], nil
	}, progress)
}

// IndexPaths loads each location with the Loader and indexes it into library.
func (ix *Indexer) IndexPaths(ctx context.Context, library string, locations []string, progress ProgressFunc) (*Result, error) {
	if ix.Loader == nil {
		return nil, libdoc.Errorf(libdoc.EINTERNAL, "indexer has no source loader")
	}
	return ix.run(ctx, library, len(locations), func(ctx context.Context, i int) (string, *libdoc.Source, error) {
		src, err := ix.Loader.LoadSource(ctx, locations[i])
		return locations[i], src, err
	}, progress)
}

type loadFunc func(ctx context.Context, i int) (string, *libdoc.Source, error)

func (ix *Indexer) run(ctx context.Context, library string, total int, load loadFunc, progress ProgressFunc) (*Result, error) {
	if strings.TrimSpace(library) == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "library name required")
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{RunID: uuid.NewString(), Failures: []Failure{}}
	logger := ix.logger().With("run", result.RunID, "library", library)
	logger.Info("index started", "sources", total)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	preparedCh := make(chan prepared)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i := 0; i < total; i++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				p := ix.prepare(gctx, library, i, load)
				select {
				case preparedCh <- p:
				case <-gctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
		close(preparedCh)
	}()

	// Commit strictly in input order so a failure leaves every earlier
	// document committed.
	pending := make(map[int]prepared)
	next := 0
	for p := range preparedCh {
		pending[p.position] = p
		for {
			q, ok := pending[next]
			if !ok || ctx.Err() != nil {
				break
			}
			delete(pending, next)
			next++
			err := ix.commit(ctx, q, result, logger)

			event := ProgressEvent{Type: ProgressCompleted, Completed: next, Total: total, Path: q.path}
			switch {
			case err != nil:
				event.Type, event.Error = ProgressFailed, err
			case q.skipped:
				event.Type = ProgressSkipped
			}
			progress(event)
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: next, Total: total})
	logger.Info("index finished",
		"indexed", result.Indexed, "chunks", result.Chunks, "unchanged", result.Unchanged,
		"skipped", result.Skipped, "failed", len(result.Failures))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// prepare loads, converts, titles and chunks source i. It never fails the
// batch; errors are carried to the committer.
func (ix *Indexer) prepare(ctx context.Context, library string, i int, load loadFunc) prepared {
	path, src, err := load(ctx, i)
	p := prepared{position: i, path: path}
	if err != nil {
		p.err = err
		return p
	}
	if err := src.Validate(); err != nil {
		p.err = err
		return p
	}
	p.path = src.Path

	content := src.Content
	if src.Format == libdoc.FormatHTML && !src.IsEmpty() {
		if ix.Converter == nil {
			p.err = libdoc.Errorf(libdoc.EINVALID, "%s: HTML sources need a converter", src.Path)
			return p
		}
		if ix.Extractor != nil {
			if content, err = ix.Extractor.ExtractContent(content); err != nil {
				p.err = err
				return p
			}
		}
		if content, err = ix.Converter.Convert(content); err != nil {
			p.err = err
			return p
		}
	}
	if strings.TrimSpace(content) == "" {
		p.skipped = true
		return p
	}

	title, body := ix.Titles.ExtractTitle(content, src.Path)
	if src.Title != "" {
		title = src.Title
	}
	if strings.TrimSpace(body) == "" {
		p.skipped = true
		return p
	}

	p.upsert = &libdoc.DocumentUpsert{
		Library: library,
		Path:    src.Path,
		URL:     src.URL,
		Chunks:  ix.Chunker.Chunk(title, body, ix.Threshold),
	}
	return p
}

// commit writes one prepared source and records the outcome, returning the
// error that made it fail, if any.
func (ix *Indexer) commit(ctx context.Context, p prepared, result *Result, logger *slog.Logger) error {
	if p.skipped {
		result.Skipped++
		logger.Debug("skipped empty source", "path", p.path)
		return nil
	}

	err := p.err
	if err == nil {
		var res *libdoc.UpsertResult
		if res, err = ix.Documents.UpsertDocument(ctx, p.upsert); err == nil {
			if res.Unchanged {
				result.Unchanged++
			} else {
				result.Indexed++
				result.Chunks += len(res.Documents)
			}
			return nil
		}
	}

	result.Failures = append(result.Failures, Failure{Path: p.path, Message: err.Error(), Err: err})
	logger.Warn("index failed", "path", p.path, "err", err)
	return err
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ix.Logger
}
