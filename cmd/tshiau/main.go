// Command tshiau reads a Mandarin sentence, looks every word up in the MOE
// Taiwanese dictionary (falling back to per-character lookups for words
// without an entry), and writes a markdown pre-processing document for a
// downstream translation model to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/wrlin/tshiau/fs"
	"github.com/wrlin/tshiau/goquery"
	"github.com/wrlin/tshiau/gse"
	tshttp "github.com/wrlin/tshiau/http"
	"github.com/wrlin/tshiau/opencc"
	"github.com/wrlin/tshiau/pipeline"
	tsslog "github.com/wrlin/tshiau/slog"
	"github.com/wrlin/tshiau/yaml"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. The document is written to
// stdout only when the whole pipeline succeeds; logs go to stderr.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tshiau"),
		kong.Description("Pre-process Mandarin text into a Hokkien translation prompt via dictionary lookups"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := yaml.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.applyTo(cfg)

	if err := tshttp.ValidateTemplate(cfg.DictURL); err != nil {
		return err
	}

	text, err := readInput(cli, stdin)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("failed to locate cache directory: %w", err)
		}
		cacheDir = filepath.Join(userCache, "tshiau", "pages")
	}
	cache, err := fs.NewCache(cacheDir)
	if err != nil {
		return fmt.Errorf("failed to open page cache: %w", err)
	}

	normalizer, err := opencc.NewNormalizer()
	if err != nil {
		return fmt.Errorf("failed to load conversion dictionaries: %w", err)
	}

	segmenter, err := gse.NewSegmenter(gse.Mode(cfg.SplitMode), gse.WithLogger(logger))
	if err != nil {
		return err
	}

	fetcher := tshttp.NewClient(
		tshttp.WithURLTemplate(cfg.DictURL),
		tshttp.WithTimeout(cfg.Timeout()),
		tshttp.WithConcurrency(cfg.Concurrency),
		tshttp.WithRetryDelays(cfg.RetryDelays()),
		tshttp.WithRateLimit(cfg.RateLimitRPS),
		tshttp.WithCache(cache),
	)

	runner := &pipeline.Runner{
		Normalizer: normalizer,
		Segmenter:  segmenter,
		Fetcher:    tsslog.NewLoggingFetcher(fetcher, logger),
		Renderer:   goquery.NewRenderer(),
		Prompt:     cfg.Prompt,
		Logger:     logger,
	}

	doc, err := runner.Run(ctx, text)
	if err != nil {
		return err
	}

	_, err = io.WriteString(stdout, pipeline.Format(doc))
	return err
}

// readInput resolves the input text: positional argument, then file, then
// stdin.
func readInput(cli *CLI, stdin io.Reader) (string, error) {
	if cli.Text != "" {
		return cli.Text, nil
	}
	if cli.File != "" {
		data, err := os.ReadFile(cli.File)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
