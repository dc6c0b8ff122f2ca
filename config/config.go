package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/tools"
)

const (
	EnvRoot         = "ANYMOTION_ROOT"
	EnvAPIURL       = "ANYMOTION_API_URL"
	EnvClientID     = "ANYMOTION_CLIENT_ID"
	EnvClientSecret = "ANYMOTION_CLIENT_SECRET"

	fileName = "config.yml"
)

var ErrCredentials = errors.New(`The credentials is invalid or not set. Run "amcli configure" to set credentials.`)

var GConfig *Config

type Config struct {
	LogLevel      string              `yaml:"log_level,omitempty"`
	LogFile       string              `yaml:"log_file,omitempty"`
	LogMaxSize    int                 `yaml:"log_max_size,omitempty"`
	LogMaxBackups int                 `yaml:"log_max_backups,omitempty"`
	LogMaxAge     int                 `yaml:"log_max_age,omitempty"`
	Profiles      map[string]*Profile `yaml:"profiles"`

	path string
}

type Profile struct {
	APIURL       string `yaml:"api_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Interval     int    `yaml:"interval,omitempty"`
	Timeout      int    `yaml:"timeout,omitempty"`
}

// Dir is $ANYMOTION_ROOT, or ~/.anymotion when unset.
func Dir() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".anymotion"
	}
	return filepath.Join(home, ".anymotion")
}

func Path() string {
	return filepath.Join(Dir(), fileName)
}

// Init loads .env files and the config file into GConfig.
func Init(filePath string) error {
	if err := LoadEnv(".env", filepath.Join(filepath.Dir(filePath), ".env")); err != nil {
		return err
	}
	cfg, err := Load(filePath)
	if err != nil {
		return err
	}
	GConfig = cfg
	return nil
}

// LoadEnv loads the files that exist. Variables already set in the
// environment win.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if tools.Exists(f) && !slices.Contains(existing, f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads filePath. A missing file yields an empty config that Save will
// create.
func Load(filePath string) (*Config, error) {
	cfg := &Config{path: filePath}
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filePath, err)
		}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]*Profile{}
	}
	return cfg, nil
}

func (c *Config) FilePath() string {
	return c.path
}

func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// Stored returns the profile as written in the file, without defaults or
// environment overrides.
func (c *Config) Stored(name string) Profile {
	if p, ok := c.Profiles[name]; ok && p != nil {
		return *p
	}
	return Profile{}
}

func (c *Config) SetProfile(name string, p Profile) {
	c.Profiles[name] = &p
}

func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Profile resolves the named profile: stored values, then environment
// overrides, then defaults.
func (c *Config) Profile(name string) Profile {
	p := c.Stored(name)
	if v := os.Getenv(EnvAPIURL); v != "" {
		p.APIURL = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		p.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		p.ClientSecret = v
	}
	if p.APIURL == "" {
		p.APIURL = consts.DefaultAPIURL
	}
	if p.Interval == 0 {
		p.Interval = consts.DefaultInterval
	}
	if p.Timeout == 0 {
		p.Timeout = consts.DefaultTimeout
	}
	return p
}

func (p Profile) Verify() error {
	if strings.TrimSpace(p.ClientID) == "" || strings.TrimSpace(p.ClientSecret) == "" {
		return ErrCredentials
	}
	if p.Interval < 0 {
		return fmt.Errorf("interval must not be negative: %d", p.Interval)
	}
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %d", p.Timeout)
	}
	return nil
}

// MaskedSecret keeps the last four characters of the client secret.
func (p Profile) MaskedSecret() string {
	return Mask(p.ClientSecret)
}

func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	n := len(secret)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	return strings.Repeat("*", n-4) + secret[n-4:]
}
