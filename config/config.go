package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/masmgr/commitlog/internal/cache"
	"github.com/masmgr/commitlog/internal/git"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options.
type Config struct {
	Git     GitConfig     `json:"git" yaml:"git" toml:"git"`
	History HistoryConfig `json:"history" yaml:"history" toml:"history"`
	Search  SearchConfig  `json:"search" yaml:"search" toml:"search"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" toml:"cache"`
	Log     LogConfig     `json:"log" yaml:"log" toml:"log"`
}

// GitConfig controls how git is located and invoked.
type GitConfig struct {
	Binary         string `json:"binary" yaml:"binary" toml:"binary"`                         // Default: "git"
	ReposRoot      string `json:"reposRoot" yaml:"reposRoot" toml:"reposRoot"`                // Directory holding named clones
	Remote         string `json:"remote" yaml:"remote" toml:"remote"`                         // Default: "origin"
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds" toml:"timeoutSeconds"` // Per invocation, default: 30
}

// HistoryConfig controls paginated history retrieval.
type HistoryConfig struct {
	PerPage           int      `json:"perPage" yaml:"perPage" toml:"perPage"`
	PreferredBranches []string `json:"preferredBranches" yaml:"preferredBranches" toml:"preferredBranches"`
}

// SearchConfig controls commit search.
type SearchConfig struct {
	Concurrency int `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
}

// CacheConfig selects the snapshot store.
type CacheConfig struct {
	Backend string            `json:"backend" yaml:"backend" toml:"backend"` // redis, bolt or memory
	Redis   cache.RedisConfig `json:"redis" yaml:"redis" toml:"redis"`
	Bolt    cache.BoltConfig  `json:"bolt" yaml:"bolt" toml:"bolt"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"` // json or text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary:         "git",
			ReposRoot:      ".",
			Remote:         git.DefaultRemote,
			TimeoutSeconds: int(git.DefaultTimeout / time.Second),
		},
		History: HistoryConfig{
			PerPage:           git.DefaultWindowSize,
			PreferredBranches: append([]string(nil), git.DefaultPreferredBranches...),
		},
		Search: SearchConfig{
			Concurrency: 4,
		},
		Cache: CacheConfig{
			Backend: string(cache.BackendRedis),
			Redis:   cache.RedisConfig{Addr: "localhost:6379"},
			Bolt:    cache.BoltConfig{Path: "commitlog.db"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// candidateNames are searched, in order, in the working directory and then $HOME.
var candidateNames = []string{".commitlog.json", ".commitlog.yaml", ".commitlog.yml", ".commitlog.toml"}

// LoadConfig loads configuration from a file, merging with defaults, then
// applies COMMITLOG_* environment overrides. With an empty path the default
// locations are tried; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func (c *Config) applyEnv() error {
	envString("COMMITLOG_REPOS_ROOT", &c.Git.ReposRoot)
	envString("COMMITLOG_GIT_BINARY", &c.Git.Binary)
	envString("COMMITLOG_CACHE_BACKEND", &c.Cache.Backend)
	envString("COMMITLOG_REDIS_ADDR", &c.Cache.Redis.Addr)
	envString("COMMITLOG_REDIS_PASSWORD", &c.Cache.Redis.Password)
	envString("COMMITLOG_BOLT_PATH", &c.Cache.Bolt.Path)
	envString("COMMITLOG_LOG_LEVEL", &c.Log.Level)

	if val := os.Getenv("COMMITLOG_REDIS_DB"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("COMMITLOG_REDIS_DB: %w", err)
		}
		c.Cache.Redis.Database = n
	}
	if val := os.Getenv("COMMITLOG_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("COMMITLOG_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("COMMITLOG_TIMEOUT must be positive, got %q", val)
		}
		// Rounded up to whole seconds so sub-second values stay positive.
		c.Git.TimeoutSeconds = int((d + time.Second - 1) / time.Second)
	}
	return nil
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

// Validate reports settings that no command could work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Git.Binary == "" {
		errs = append(errs, errors.New("git.binary must not be empty"))
	}
	if c.Git.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("git.timeoutSeconds must be positive, got %d", c.Git.TimeoutSeconds))
	}
	if c.History.PerPage <= 0 {
		errs = append(errs, fmt.Errorf("history.perPage must be positive, got %d", c.History.PerPage))
	}
	if c.Search.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("search.concurrency must be positive, got %d", c.Search.Concurrency))
	}
	if _, err := cache.ParseBackend(c.Cache.Backend); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Timeout is the per-invocation git timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Git.TimeoutSeconds) * time.Second
}

// RepoPath maps a repository name to a filesystem path. Absolute names are
// used as-is; others are joined to git.reposRoot.
func (c *Config) RepoPath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.Git.ReposRoot, name)
}

// GitOptions converts the git section into git.Options.
func (c *Config) GitOptions() git.Options {
	return git.Options{
		Binary:            c.Git.Binary,
		Remote:            c.Git.Remote,
		PreferredBranches: c.History.PreferredBranches,
	}
}

// CacheOptions converts the cache section into cache.Options.
func (c *Config) CacheOptions() (cache.Options, error) {
	backend, err := cache.ParseBackend(c.Cache.Backend)
	if err != nil {
		return cache.Options{}, err
	}
	return cache.Options{Backend: backend, Redis: c.Cache.Redis, Bolt: c.Cache.Bolt}, nil
}

// SaveConfig saves configuration to a file in the format implied by its extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
