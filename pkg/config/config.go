package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/feeddigest/pkg/digest"
	"github.com/umputun/feeddigest/pkg/domain"
	"github.com/umputun/feeddigest/pkg/feed"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Feeds  []Feed       `yaml:"feeds" json:"feeds" jsonschema:"description=Ordered list of feeds, one digest section per feed"`
	Digest DigestConfig `yaml:"digest" json:"digest" jsonschema:"description=Digest generation settings"`
	Fetch  FetchConfig  `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching settings"`
}

// Feed represents a configured feed source
type Feed struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Section title (defaults to URL)"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// DigestConfig holds digest output settings
type DigestConfig struct {
	Dir          string `yaml:"dir" json:"dir" jsonschema:"default=digests,description=Output directory for digests and index"`
	ItemsPerFeed int    `yaml:"items_per_feed" json:"items_per_feed" jsonschema:"default=5,minimum=1,description=Maximum items taken from each feed"`
	Profile      string `yaml:"profile" json:"profile" jsonschema:"default=plain,enum=plain,enum=enriched,description=Rendering profile"`
	HTML         bool   `yaml:"html" json:"html" jsonschema:"default=false,description=Write sanitized html companion next to markdown digest"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"type=string,default=30s,description=Per feed fetch timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=FeedDigest/1.0,description=User agent for HTTP requests"`
}

// DefaultFeeds is the feed list used when no configuration file is given
var DefaultFeeds = []Feed{
	{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
	{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
	{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index"},
	{Name: "Wired", URL: "https://www.wired.com/feed/rss"},
	{Name: "Quanta Magazine", URL: "https://www.quantamagazine.org/feed/"},
	{Name: "NASA", URL: "https://www.nasa.gov/news-releases/feed/"},
	{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/topNews"},
	{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
	{Name: "Associated Press", URL: "https://feeds.apnews.com/rss/apf-topnews"},
	{Name: "Financial Times", URL: "https://www.ft.com/rss/home"},
	{Name: "Quartz", URL: "https://qz.com/feed"},
	{Name: "Longreads", URL: "https://longreads.com/feed/"},
}

// Default returns the configuration used without a config file
func Default() *Config {
	cfg := &Config{Feeds: slices.Clone(DefaultFeeds)}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values, a missing feeds section means the default feed list
func setDefaults(cfg *Config) {
	if cfg.Feeds == nil {
		cfg.Feeds = slices.Clone(DefaultFeeds)
	}
	for i := range cfg.Feeds {
		if cfg.Feeds[i].Name == "" {
			cfg.Feeds[i].Name = cfg.Feeds[i].URL
		}
	}

	if cfg.Digest.Dir == "" {
		cfg.Digest.Dir = "digests"
	}
	if cfg.Digest.ItemsPerFeed == 0 {
		cfg.Digest.ItemsPerFeed = digest.DefaultItemsPerFeed
	}
	if cfg.Digest.Profile == "" {
		cfg.Digest.Profile = digest.ProfilePlain
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = digest.DefaultTimeout
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = feed.DefaultUserAgent
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
	}

	if cfg.Digest.ItemsPerFeed < 1 {
		return fmt.Errorf("digest.items_per_feed must be at least 1")
	}
	if !slices.Contains(digest.Profiles(), cfg.Digest.Profile) {
		return fmt.Errorf("digest.profile %q is not supported", cfg.Digest.Profile)
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}

	return nil
}

// Sources returns the configured feeds as digest sources, in configured order
func (c *Config) Sources() []domain.Source {
	res := make([]domain.Source, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		res = append(res, domain.Source{Name: f.Name, URL: f.URL})
	}
	return res
}

// GetDigestConfig returns digest configuration
func (c *Config) GetDigestConfig() DigestConfig {
	return c.Digest
}

// GetFetchConfig returns fetch configuration
func (c *Config) GetFetchConfig() FetchConfig {
	return c.Fetch
}
