package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobsift/internal/model"
)

// Config is the root configuration for jobsift.
type Config struct {
	Files     FilesConfig
	HTTP      HTTPConfig
	Selectors SelectorConfig
}

// FilesConfig names the JSON files shared by the fetch and triage pipelines.
type FilesConfig struct {
	Jobs          string `yaml:"jobs"`
	Accepted      string `yaml:"accepted"`
	Rejected      string `yaml:"rejected"`
	NoDescription string `yaml:"no_description"`
	Other         string `yaml:"other"`
}

// CategoryPath returns the store file for the given category.
func (f FilesConfig) CategoryPath(c model.Category) string {
	switch c {
	case model.CategoryAccepted:
		return f.Accepted
	case model.CategoryRejected:
		return f.Rejected
	case model.CategoryNoDescription:
		return f.NoDescription
	case model.CategoryOther:
		return f.Other
	default:
		return ""
	}
}

// HTTPConfig controls timeouts, retries and politeness for page fetches.
type HTTPConfig struct {
	Timeout        time.Duration // per-request timeout
	UserAgent      string
	MaxRetries     int           // additional attempts after the first failure
	RetryBaseDelay time.Duration // doubled on each retry
	MinDelay       time.Duration // minimum gap between requests to the same host
}

// SelectorConfig holds the CSS selectors used to scrape listing and detail pages.
type SelectorConfig struct {
	ListingItem string `yaml:"listing_item"`
	Company     string `yaml:"company"`
	Link        string `yaml:"link"`
	DetailBody  string `yaml:"detail_body"`
	Heading     string `yaml:"heading"`
}

const defaultUserAgent = "jobsift/1.0 (+https://github.com/amishk599/jobsift)"

// Default returns the built-in configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Jobs:          "bright-network-jobs.json",
			Accepted:      "accepted_jobs.json",
			Rejected:      "rejected_jobs.json",
			NoDescription: "no_description.json",
			Other:         "other_interested.json",
		},
		HTTP: HTTPConfig{
			Timeout:        30 * time.Second,
			UserAgent:      defaultUserAgent,
			MaxRetries:     2,
			RetryBaseDelay: 2 * time.Second,
		},
		Selectors: SelectorConfig{
			ListingItem: ".article-content li",
			Company:     "span",
			Link:        "a",
			DetailBody:  "main article",
			Heading:     "h2",
		},
	}
}

// rawConfig is used for YAML unmarshaling (durations as strings).
type rawConfig struct {
	Files     FilesConfig    `yaml:"files"`
	HTTP      rawHTTPConfig  `yaml:"http"`
	Selectors SelectorConfig `yaml:"selectors"`
}

type rawHTTPConfig struct {
	Timeout        string `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryBaseDelay string `yaml:"retry_base_delay"`
	MinDelay       string `yaml:"min_delay"`
}

// Load reads and parses the YAML config file at path, fills unset fields from
// Default, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	mergeFiles(&cfg.Files, raw.Files)
	mergeSelectors(&cfg.Selectors, raw.Selectors)

	if raw.HTTP.Timeout != "" {
		cfg.HTTP.Timeout, err = time.ParseDuration(raw.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse http.timeout %q: %w", raw.HTTP.Timeout, err)
		}
	}
	if raw.HTTP.RetryBaseDelay != "" {
		cfg.HTTP.RetryBaseDelay, err = time.ParseDuration(raw.HTTP.RetryBaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse http.retry_base_delay %q: %w", raw.HTTP.RetryBaseDelay, err)
		}
	}
	if raw.HTTP.MinDelay != "" {
		cfg.HTTP.MinDelay, err = time.ParseDuration(raw.HTTP.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse http.min_delay %q: %w", raw.HTTP.MinDelay, err)
		}
	}
	if raw.HTTP.MaxRetries != nil {
		cfg.HTTP.MaxRetries = *raw.HTTP.MaxRetries
	}
	if raw.HTTP.UserAgent != "" {
		cfg.HTTP.UserAgent = raw.HTTP.UserAgent
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve picks the config source. Priority: explicit path > JOBSIFT_CONFIG env
// var > ./jobsift.yaml if it exists > built-in defaults.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("JOBSIFT_CONFIG")
	}
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat("jobsift.yaml"); err == nil {
		return Load("jobsift.yaml")
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat jobsift.yaml: %w", err)
	}
	return Default(), nil
}

func mergeFiles(dst *FilesConfig, src FilesConfig) {
	setIf(&dst.Jobs, src.Jobs)
	setIf(&dst.Accepted, src.Accepted)
	setIf(&dst.Rejected, src.Rejected)
	setIf(&dst.NoDescription, src.NoDescription)
	setIf(&dst.Other, src.Other)
}

func mergeSelectors(dst *SelectorConfig, src SelectorConfig) {
	setIf(&dst.ListingItem, src.ListingItem)
	setIf(&dst.Company, src.Company)
	setIf(&dst.Link, src.Link)
	setIf(&dst.DetailBody, src.DetailBody)
	setIf(&dst.Heading, src.Heading)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func validate(cfg *Config) error {
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must not be negative, got %d", cfg.HTTP.MaxRetries)
	}
	if cfg.HTTP.RetryBaseDelay < 0 || cfg.HTTP.MinDelay < 0 {
		return fmt.Errorf("http delays must not be negative")
	}

	// Every store must live in its own file or categories stop being disjoint.
	seen := map[string]string{cfg.Files.Jobs: "jobs"}
	for _, c := range model.Categories {
		p := cfg.Files.CategoryPath(c)
		if other, ok := seen[p]; ok {
			return fmt.Errorf("files.%s and files.%s both point at %q", c, other, p)
		}
		seen[p] = string(c)
	}
	return nil
}
