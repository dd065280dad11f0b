package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultStartURL            = "https://angel.co/companies"
	DefaultMaxRequestsPerCrawl = 200
	DefaultSQLitePath          = "portfolio.db"
	DefaultMongoDatabase       = "portfolio_spider"
	DefaultTimeoutSec          = 30
	DefaultMaxWorkers          = 4

	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

var (
	ErrNoStartURLs        = errors.New("invalid input: at least one start url is required")
	ErrInvalidMaxRequests = errors.New("invalid max_requests_per_crawl: must be positive")
	ErrUnknownDriver      = errors.New("invalid db driver: must be mongo or sqlite")
	ErrNoConnection       = errors.New("invalid db config: mongo driver requires a connection string")
	ErrNoSQLitePath       = errors.New("invalid db config: sqlite driver requires a path")
	ErrInvalidWorkers     = errors.New("invalid max_concurrent_workers: must be positive")
	ErrInvalidDelay       = errors.New("invalid delay_ms: must be non-negative")
	ErrInvalidTimeout     = errors.New("invalid timeout_sec: must be positive")
)

// InputConfig holds the crawl input options.
type InputConfig struct {
	StartURLs           []string `yaml:"start_urls"`
	MaxRequestsPerCrawl int      `yaml:"max_requests_per_crawl"`
	FollowInternalOnly  *bool    `yaml:"follow_internal_only"`
}

// FollowInternal reports follow_internal_only, true when unset.
func (c InputConfig) FollowInternal() bool {
	return c.FollowInternalOnly == nil || *c.FollowInternalOnly
}

type DBConfig struct {
	Driver      string `yaml:"driver"`
	Connection  string `yaml:"connection"`
	Database    string `yaml:"database"`
	Path        string `yaml:"path"`
	Collections struct {
		Records      string `yaml:"records"`
		Documents    string `yaml:"documents"`
		CrawlHistory string `yaml:"crawl_history"`
		CrawlState   string `yaml:"crawl_state"`
	} `yaml:"collections"`
}

type LogicConfig struct {
	DelayMS              int      `yaml:"delay_ms"`
	TimeoutSec           int      `yaml:"timeout_sec"`
	MaxDepth             int      `yaml:"max_depth"`
	MaxConcurrentWorkers int      `yaml:"max_concurrent_workers"`
	UserAgent            string   `yaml:"user_agent"`
	IgnoreRobotsTxt      bool     `yaml:"ignore_robots_txt"`
	ProxyURLs            []string `yaml:"proxy_urls"`
	ArchivePages         bool     `yaml:"archive_pages"`
}

type SpiderConfig struct {
	Input InputConfig `yaml:"input"`
	DB    DBConfig    `yaml:"db"`
	Logic LogicConfig `yaml:"logic"`
}

// LoadConfig reads path and fills defaults. A missing file yields the defaults.
func LoadConfig(path string) (*SpiderConfig, error) {
	var cfg SpiderConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func (c *SpiderConfig) ApplyDefaults() {
	if len(c.Input.StartURLs) == 0 {
		c.Input.StartURLs = []string{DefaultStartURL}
	}
	if c.Input.MaxRequestsPerCrawl == 0 {
		c.Input.MaxRequestsPerCrawl = DefaultMaxRequestsPerCrawl
	}

	if c.DB.Driver == "" {
		c.DB.Driver = DriverSQLite
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		c.DB.Path = DefaultSQLitePath
	}
	if c.DB.Database == "" {
		c.DB.Database = DefaultMongoDatabase
	}
	cols := &c.DB.Collections
	if cols.Records == "" {
		cols.Records = "records"
	}
	if cols.Documents == "" {
		cols.Documents = "documents"
	}
	if cols.CrawlHistory == "" {
		cols.CrawlHistory = "crawl_history"
	}
	if cols.CrawlState == "" {
		cols.CrawlState = "crawl_state"
	}

	if c.Logic.TimeoutSec == 0 {
		c.Logic.TimeoutSec = DefaultTimeoutSec
	}
	if c.Logic.MaxConcurrentWorkers == 0 {
		c.Logic.MaxConcurrentWorkers = DefaultMaxWorkers
	}
}

func (c *SpiderConfig) Validate() error {
	if len(c.Input.StartURLs) == 0 {
		return ErrNoStartURLs
	}
	if c.Input.MaxRequestsPerCrawl <= 0 {
		return ErrInvalidMaxRequests
	}

	switch c.DB.Driver {
	case DriverMongo:
		if c.DB.Connection == "" {
			return ErrNoConnection
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return ErrNoSQLitePath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}

	if c.Logic.MaxConcurrentWorkers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Logic.DelayMS < 0 {
		return ErrInvalidDelay
	}
	if c.Logic.TimeoutSec <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
