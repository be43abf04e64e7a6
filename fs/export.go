package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/libdoc"
	"gopkg.in/yaml.v3"
)

// Exporter writes a library's documents back to disk as markdown files.
// Files are saved under baseDir/name.tmp and only replace baseDir/name when
// Commit is called, so a failed export leaves the previous one intact.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter writing to baseDir/name.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{baseDir: baseDir, name: name}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

// Dir returns the directory the export is committed to.
func (e *Exporter) Dir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes a whole source document to the temp directory at its path.
func (e *Exporter) Save(ctx context.Context, doc *libdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel := filepath.FromSlash(doc.ParentPath)
	if !filepath.IsLocal(rel) {
		return libdoc.Errorf(libdoc.EINVALID, "document path %q escapes export directory", doc.ParentPath)
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	full := filepath.Join(e.tempDir(), rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0644)
}

// Commit replaces the export directory with the saved files.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.Dir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.Dir())
}

// Abort discards the saved files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

type frontMatter struct {
	Title  string `yaml:"title"`
	Source string `yaml:"source,omitempty"`
}

// FormatDocument renders doc as markdown with a YAML front-matter block
// carrying its title and source URL. Indexing the output again yields the
// same title and body.
func FormatDocument(doc *libdoc.Document) (string, error) {
	fm, err := yaml.Marshal(frontMatter{Title: doc.Title, Source: doc.URL})
	if err != nil {
		return "", libdoc.Errorf(libdoc.EINTERNAL, "encode front-matter: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
