package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/neighborfit/internal/logging"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'neighborfit config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML on top of the defaults, expands paths and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

func (c *Config) expandPaths() error {
	var err error
	c.Database.Path, err = expandPath(c.Database.Path)
	return err
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if c.Matching.TopN < 1 || c.Matching.TopN > 1000 {
		errs = append(errs, errors.New("matching.top_n must be between 1 and 1000"))
	}
	if err := c.Matching.DefaultWeights.Preferences().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("matching.default_weights: %w", err))
	}

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of trace, debug, info, warn, error, disabled, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format must be 'json' or 'console', got '%s'", c.Log.Format))
	}

	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.ReadTimeoutSeconds < 1 || c.Server.WriteTimeoutSeconds < 1 {
		errs = append(errs, errors.New("server timeouts must be at least 1 second"))
	}
	if c.Server.RequestsPerMinute < 1 {
		errs = append(errs, errors.New("server.requests_per_minute must be at least 1"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the database directory
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// DefaultFile is the commented config written by 'neighborfit config init'
const DefaultFile = `# neighborfit configuration

[database]
path = "~/.local/share/neighborfit/neighborfit.db"

[matching]
top_n = 10  # neighborhoods shown by 'match' when no --limit is given

# Used when a user has no saved preferences
[matching.default_weights]
safety = 1.0
commute = 1.0
amenities = 1.0
walkability = 1.0

[log]
level = "info"       # trace, debug, info, warn, error, disabled
format = "console"   # console or json; logs always go to stderr

[mcp]
enabled = true
transport = "stdio"

[server]
address = "127.0.0.1:8080"
read_timeout_seconds = 15
write_timeout_seconds = 15
requests_per_minute = 120
allowed_origins = ["http://localhost:3000"]
`
