package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/chat"
	"github.com/hexbenjamin/webster/crawl"
	"github.com/hexbenjamin/webster/fs"
	"github.com/hexbenjamin/webster/gemini"
	"github.com/hexbenjamin/webster/goquery"
	"github.com/hexbenjamin/webster/htmltomarkdown"
	websterhttp "github.com/hexbenjamin/webster/http"
	"github.com/hexbenjamin/webster/index"
	"github.com/hexbenjamin/webster/openai"
	"github.com/hexbenjamin/webster/readability"
	"github.com/hexbenjamin/webster/rod"
	websterslog "github.com/hexbenjamin/webster/slog"
	"github.com/hexbenjamin/webster/sqlite"
	"github.com/hexbenjamin/webster/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
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
	SiteService     webster.SiteService
	DocumentService webster.DocumentService
}

// NewMain returns a new instance of Main with defaults. Environment
// variables from a .env file in the working directory are loaded first.
func NewMain() *Main {
	_ = godotenv.Load()
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
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webster"),
		kong.Description("Chat with any website: scrape, embed, ask."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webster --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WEBSTER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SiteService = sqlite.NewSiteService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Sites = m.SiteService
	deps.Documents = m.DocumentService
	deps.Chunks = sqlite.NewChunkService(m.DB)
	deps.Conversations = sqlite.NewConversationService(m.DB)
	deps.Sitemaps = websterslog.NewLoggingSitemapService(websterhttp.NewSitemapService(nil), logger)

	// Wire command-specific dependencies based on command
	if cmd == "scrape" && !cli.Scrape.Preview {
		var fetcher webster.Fetcher = websterslog.NewLoggingFetcher(websterhttp.NewFetcher(), logger)
		defer fetcher.Close()

		// --render adds a browser fetcher; the crawler probes the root
		// page with both and renders only when it adds content.
		var renderFetcher webster.Fetcher
		if cli.Scrape.Render {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			renderFetcher = websterslog.NewLoggingFetcher(rodFetcher, logger)
			defer renderFetcher.Close()
		}

		// Token counting is a nicety for the crawl summary; skip it when
		// the local tokenizer is unavailable.
		var tokenCounter webster.TokenCounter
		if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			tokenCounter = tc
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:      deps.Sitemaps,
			Fetcher:       fetcher,
			RenderFetcher: renderFetcher,
			Extractor:     buildExtractor(cli.Scrape.TagName),
			Converter:     htmltomarkdown.NewConverter(),
			Documents:     m.DocumentService,
			Links:         goquery.NewAnchorSelector(),
			RateLimiter:   crawl.NewDomainLimiter(1.0),
			TokenCounter:  tokenCounter,
			Concurrency:   cli.Scrape.Concurrency,
		}
	}

	if cmd == "embed" {
		embedder, _, err := buildBackend(ctx)
		if err != nil {
			return err
		}
		deps.Indexer = &index.Indexer{
			Documents: m.DocumentService,
			Chunks:    deps.Chunks,
			Embedder:  websterslog.NewLoggingEmbedder(embedder, logger),
		}
	}

	if cmd == "ask" || cmd == "chat" {
		embedder, chatter, err := buildBackend(ctx)
		if err != nil {
			return err
		}
		deps.Engine = &chat.Engine{
			Search:        sqlite.NewSearchService(m.DB, embedder),
			Chatter:       chatter,
			Conversations: deps.Conversations,
		}
	}

	return kongCtx.Run(deps)
}

// defaultAPIBase targets a local OpenAI-compatible inference server.
const defaultAPIBase = "http://localhost:1337/v1"

// tokenizerModel is used for local token counting during scrapes.
const tokenizerModel = "gemini-2.5-flash"

// buildBackend selects the embedding and chat backend from WEBSTER_BACKEND.
func buildBackend(ctx context.Context) (webster.Embedder, webster.Chatter, error) {
	backend := os.Getenv("WEBSTER_BACKEND")
	switch backend {
	case "", "openai":
		base := os.Getenv("WEBSTER_API_BASE")
		if base == "" {
			base = defaultAPIBase
		}
		client := openai.NewClient(base, os.Getenv("WEBSTER_API_KEY"))
		return openai.NewEmbedder(client), openai.NewChatter(client), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client, ""), gemini.NewChatter(client, ""), nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q: set WEBSTER_BACKEND to openai or gemini", backend)
	}
}

// buildExtractor chains content extractors. A user-supplied CSS selector
// takes precedence; trafilatura and readability serve as fallbacks.
func buildExtractor(tagName string) webster.Extractor {
	var extractors []webster.Extractor
	if tagName != "" {
		extractors = append(extractors, goquery.NewTagExtractor(tagName))
	}
	extractors = append(extractors, trafilatura.NewExtractor(), readability.NewExtractor())
	return &webster.ChainExtractor{Extractors: extractors}
}

// newLogger builds the stderr logger. WEBSTER_LOG controls verbosity
// (debug, info, warn, error); decorator logs are Info level, so the
// default of warn keeps normal runs quiet.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("WEBSTER_LOG")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("WEBSTER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webster.db"
	}
	dir := filepath.Join(home, ".webster")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webster.db")
}

// fsFormat parses the scrape export format, warning on unknown values.
func fsFormat(s string, stderr io.Writer) fs.Format {
	format, ok := fs.ParseFormat(s)
	if !ok {
		fmt.Fprintf(stderr, "unknown output format %q, defaulting to html\n", s)
	}
	return format
}
