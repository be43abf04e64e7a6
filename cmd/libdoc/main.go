package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/goldmark"
	"github.com/fwojciec/libdoc/goquery"
	"github.com/fwojciec/libdoc/htmltomarkdown"
	"github.com/fwojciec/libdoc/ingest"
	libslog "github.com/fwojciec/libdoc/slog"
	"github.com/fwojciec/libdoc/sqlite"
	"github.com/fwojciec/libdoc/trafilatura"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	LibraryService    libdoc.LibraryService
	DocumentService   libdoc.DocumentService
	SearchService     libdoc.SearchService
	StatisticsService libdoc.StatisticsService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Color:  isTerminal(stdout),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("libdoc"),
		kong.Description("Index documentation and search it with BM25."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := libdoc.Errorf(libdoc.EINVALID, "no command specified. Run 'libdoc --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err.Message)
		return err
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	// Presets are static and need no database.
	if kongCtx.Command() == "presets" || strings.HasPrefix(kongCtx.Command(), "presets ") {
		return kongCtx.Run(deps)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cli.LogLevel)}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", libdoc.ErrorMessage(err))
		fmt.Fprintf(stderr, "Hint: Set LIBDOC_DB to use a different database path\n")
		return err
	}
	defer m.Close()

	m.LibraryService = libslog.NewLoggingLibraryService(sqlite.NewLibraryService(m.DB), logger)
	m.DocumentService = libslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), logger)
	m.SearchService = libslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB), logger)
	m.StatisticsService = libslog.NewLoggingStatisticsService(sqlite.NewStatisticsService(m.DB), logger)
	deps.Libraries = m.LibraryService
	deps.Documents = m.DocumentService
	deps.Search = m.SearchService
	deps.Statistics = m.StatisticsService

	if strings.HasPrefix(kongCtx.Command(), "index") {
		extractor := goquery.NewContentExtractor()
		extractor.Fallback = trafilatura.NewExtractor()
		deps.Indexer = &ingest.Indexer{
			Documents: m.DocumentService,
			Titles:    goldmark.NewTitleExtractor(),
			Chunker:   goldmark.NewChunker(),
			Converter: htmltomarkdown.NewConverter(),
			Extractor: extractor,
			Logger:    logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LIBDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "libdoc.db"
	}
	dir := filepath.Join(home, ".libdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "libdoc.db")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// isTerminal reports whether w is a terminal that accepts ANSI styling.
func isTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
