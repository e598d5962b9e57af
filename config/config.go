// Package config loads the wl configuration: a YAML file, an optional .env
// file and WL_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/etnz/watchlist/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "wl.yaml"

// Config is the full configuration of the wl tool.
type Config struct {
	Feed    Feed           `yaml:"feed"`
	Refresh Refresh        `yaml:"refresh"`
	Store   Store          `yaml:"store"`
	Server  Server         `yaml:"server"`
	Logging logging.Config `yaml:"logging"`
	Assist  Assist         `yaml:"assist"`
}

// Feed configures the upstream quote feed.
type Feed struct {
	URL     string        `yaml:"url"` // codes are appended, comma joined
	Referer string        `yaml:"referer"`
	Timeout time.Duration `yaml:"timeout"`
}

// Refresh configures recurring quote refreshes.
type Refresh struct {
	Interval time.Duration `yaml:"interval"`
}

// Store configures the persisted key/value store.
type Store struct {
	Backend string `yaml:"backend"` // file, redis, sqlite or memory
	Path    string `yaml:"path"`    // file and sqlite backends
	Redis   Redis  `yaml:"redis"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `yaml:"addr"`
}

// Assist configures the assistant.
type Assist struct {
	Model string `yaml:"model"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Feed: Feed{
			URL:     "https://hq.sinajs.cn/list=",
			Referer: "https://finance.sina.com.cn/",
			Timeout: 10 * time.Second,
		},
		Refresh: Refresh{Interval: 3 * time.Second},
		Store:   Store{Backend: "file", Path: "watchlist.json", Redis: Redis{Addr: "localhost:6379", Prefix: "wl:"}},
		Server:  Server{Addr: ":8080"},
		Logging: logging.Config{Level: "info", Format: "console", Output: "stderr"},
		Assist:  Assist{Model: "gemini-2.5-flash"},
	}
}

// Load reads the configuration file at path on top of Default, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads .env files into the process environment, without overriding
// variables already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot load %q: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"WL_FEED_URL":       &c.Feed.URL,
		"WL_FEED_REFERER":   &c.Feed.Referer,
		"WL_STORE_BACKEND":  &c.Store.Backend,
		"WL_STORE_PATH":     &c.Store.Path,
		"WL_REDIS_ADDR":     &c.Store.Redis.Addr,
		"WL_REDIS_PASSWORD": &c.Store.Redis.Password,
		"WL_SERVER_ADDR":    &c.Server.Addr,
		"WL_LOG_LEVEL":      &c.Logging.Level,
		"WL_LOG_FORMAT":     &c.Logging.Format,
		"WL_LOG_OUTPUT":     &c.Logging.Output,
		"WL_ASSIST_MODEL":   &c.Assist.Model,
	}
	for name, field := range str {
		if v, ok := lookup(name); ok {
			*field = v
		}
	}
	dur := map[string]*time.Duration{
		"WL_FEED_TIMEOUT":     &c.Feed.Timeout,
		"WL_REFRESH_INTERVAL": &c.Refresh.Interval,
	}
	for name, field := range dur {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s=%q: %w", name, v, err)
			}
			*field = d
		}
	}
	if v, ok := lookup("WL_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WL_REDIS_DB=%q: %w", v, err)
		}
		c.Store.Redis.DB = db
	}
	return nil
}
