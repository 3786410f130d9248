// Package yaml loads the optional configuration file.
package yaml

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings of the lookup pipeline. Values are
// threaded explicitly into constructors; there is no ambient state.
type Config struct {
	// DictURL is the dictionary endpoint template with one %s slot for
	// the query-escaped key.
	DictURL string `yaml:"dict_url"`
	// Concurrency bounds in-flight requests per fetch round.
	Concurrency int `yaml:"concurrency"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `yaml:"timeout_secs"`
	// RetryDelaysSecs lists the backoff delays between transport retries.
	RetryDelaysSecs []int `yaml:"retry_delays_secs"`
	// RateLimitRPS caps requests per second toward the dictionary host.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
	// CacheDir overrides the page cache location.
	CacheDir string `yaml:"cache_dir"`
	// SplitMode selects the segmentation mode: accurate, full, or search.
	SplitMode string `yaml:"split_mode"`
	// Prompt overrides the trailing instruction block.
	Prompt string `yaml:"prompt"`
}

// Load reads a config from path. A missing file yields defaults; a present
// file has defaults applied to any unset field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RetryDelays returns the retry backoff schedule as durations.
func (c *Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, len(c.RetryDelaysSecs))
	for i, secs := range c.RetryDelaysSecs {
		delays[i] = time.Duration(secs) * time.Second
	}
	return delays
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.DictURL == "" {
		cfg.DictURL = "https://sutian.moe.edu.tw/zh-hant/tshiau/?lui=hua_ku&tsha=%s"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 16
	}
	if cfg.TimeoutSecs == 0 {
		cfg.TimeoutSecs = 10
	}
	if cfg.RetryDelaysSecs == nil {
		cfg.RetryDelaysSecs = []int{1, 2, 4}
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 8
	}
	if cfg.SplitMode == "" {
		cfg.SplitMode = "accurate"
	}
}
