package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	defaultProxyURL      = "https://proxy.golang.org"
	defaultCacheTTLHours = 24
	defaultListLimit     = 100
)

// Config holds the app settings persisted in the home directory.
type Config struct {
	// ProxyURL is the module proxy queried for metadata.
	ProxyURL string `yaml:"proxy_url"`
	// CacheTTLHours is how long cached module lookups stay fresh.
	CacheTTLHours int `yaml:"cache_ttl_hours"`
	// ListLimit caps list results.
	ListLimit int `yaml:"list_limit"`
}

// CacheTTL returns the cache freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func getDefaultConfig() *Config {
	return &Config{
		ProxyURL:      defaultProxyURL,
		CacheTTLHours: defaultCacheTTLHours,
		ListLimit:     defaultListLimit,
	}
}

// Save writes the config to its file in dirPath.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads the app config from the directory, creating a
// default one on first use. Missing fields fall back to defaults.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	if c.ProxyURL == "" {
		c.ProxyURL = defaultProxyURL
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = defaultCacheTTLHours
	}
	if c.ListLimit <= 0 {
		c.ListLimit = defaultListLimit
	}
	return &c, nil
}

// GetOrCreateHomeDir returns the app home directory for the current
// user, creating it on first use.
func GetOrCreateHomeDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("name cannot be empty")
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", errors.Wrapf(err, "failed to create dir: %s", dir)
		}
	}
	return dir, nil
}
