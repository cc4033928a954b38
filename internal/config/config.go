package config

import (
	"time"

	"github.com/vijay-prabhu/neighborfit/internal/match"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Matching MatchingConfig `toml:"matching"`
	Log      LogConfig      `toml:"log"`
	MCP      MCPConfig      `toml:"mcp"`
	Server   ServerConfig   `toml:"server"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatchingConfig contains ranking settings
type MatchingConfig struct {
	// TopN is how many ranked neighborhoods are shown when no limit is given
	TopN           int           `toml:"top_n"`
	DefaultWeights WeightsConfig `toml:"default_weights"`
}

// WeightsConfig is the weight set used for users without saved preferences
type WeightsConfig struct {
	Safety      float64 `toml:"safety"`
	Commute     float64 `toml:"commute"`
	Amenities   float64 `toml:"amenities"`
	Walkability float64 `toml:"walkability"`
}

// Preferences returns the weights as a preference set with no desired amenities
func (w WeightsConfig) Preferences() match.Preferences {
	return match.Preferences{
		Amenities:         match.NewAmenitySet(),
		SafetyWeight:      w.Safety,
		CommuteWeight:     w.Commute,
		AmenitiesWeight:   w.Amenities,
		WalkabilityWeight: w.Walkability,
	}
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Address             string   `toml:"address"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
	RequestsPerMinute   int      `toml:"requests_per_minute"`
	AllowedOrigins      []string `toml:"allowed_origins"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/neighborfit/neighborfit.db",
		},
		Matching: MatchingConfig{
			TopN: 10,
			DefaultWeights: WeightsConfig{
				Safety:      1,
				Commute:     1,
				Amenities:   1,
				Walkability: 1,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
		Server: ServerConfig{
			Address:             "127.0.0.1:8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			RequestsPerMinute:   120,
			AllowedOrigins:      []string{"http://localhost:3000"},
		},
	}
}
