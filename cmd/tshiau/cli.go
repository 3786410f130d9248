package main

import (
	"time"

	"github.com/wrlin/tshiau/yaml"
)

// CLI defines the command-line interface structure for Kong. Unset flags
// fall back to the config file, which falls back to built-in defaults.
type CLI struct {
	Text        string        `arg:"" optional:"" help:"Input text to process. If omitted, reads from --file or stdin."`
	File        string        `short:"f" type:"path" help:"Path to a file containing the input text."`
	SplitMode   string        `help:"Word segmentation mode: accurate, full, or search."`
	Prompt      string        `help:"Custom instruction block appended to the generated document."`
	Concurrency int           `short:"c" help:"Concurrent lookup limit."`
	Timeout     time.Duration `short:"t" help:"Timeout per dictionary request."`
	CacheDir    string        `type:"path" help:"Directory for the fetched page cache."`
	DictURL     string        `help:"Dictionary endpoint template with one %s slot."`
	Config      string        `default:"tshiau.yaml" help:"Path to the configuration file."`
	Verbose     bool          `short:"v" help:"Enable debug logging."`
}

// applyTo overlays set flags onto the loaded configuration.
func (cli *CLI) applyTo(cfg *yaml.Config) {
	if cli.SplitMode != "" {
		cfg.SplitMode = cli.SplitMode
	}
	if cli.Prompt != "" {
		cfg.Prompt = cli.Prompt
	}
	if cli.Concurrency > 0 {
		cfg.Concurrency = cli.Concurrency
	}
	if cli.Timeout > 0 {
		cfg.TimeoutSecs = int(cli.Timeout / time.Second)
		if cfg.TimeoutSecs == 0 {
			cfg.TimeoutSecs = 1
		}
	}
	if cli.CacheDir != "" {
		cfg.CacheDir = cli.CacheDir
	}
	if cli.DictURL != "" {
		cfg.DictURL = cli.DictURL
	}
}
