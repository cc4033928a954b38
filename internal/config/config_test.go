package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Matching.TopN != 10 {
		t.Errorf("expected TopN=10, got %d", cfg.Matching.TopN)
	}

	if cfg.MCP.Transport != "stdio" {
		t.Errorf("expected Transport=stdio, got %s", cfg.MCP.Transport)
	}

	if cfg.Server.RequestsPerMinute != 120 {
		t.Errorf("expected RequestsPerMinute=120, got %d", cfg.Server.RequestsPerMinute)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "top_n too small",
			modify: func(c *Config) {
				c.Matching.TopN = 0
			},
			wantErr: true,
		},
		{
			name: "top_n too large",
			modify: func(c *Config) {
				c.Matching.TopN = 5000
			},
			wantErr: true,
		},
		{
			name: "all default weights zero",
			modify: func(c *Config) {
				c.Matching.DefaultWeights = WeightsConfig{}
			},
			wantErr: true,
		},
		{
			name: "negative default weight",
			modify: func(c *Config) {
				c.Matching.DefaultWeights.Safety = -1
			},
			wantErr: true,
		},
		{
			name: "single non-zero weight",
			modify: func(c *Config) {
				c.Matching.DefaultWeights = WeightsConfig{Walkability: 2}
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "chatty"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
		{
			name: "zero requests per minute",
			modify: func(c *Config) {
				c.Server.RequestsPerMinute = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = ""
	cfg.MCP.Transport = "http"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "database.path") || !strings.Contains(msg, "mcp.transport") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[database]
path = "` + filepath.Join(dir, "test.db") + `"

[matching]
top_n = 3

[matching.default_weights]
safety = 2.0
commute = 0.0
amenities = 0.0
walkability = 1.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Matching.TopN != 3 {
		t.Errorf("expected TopN=3, got %d", cfg.Matching.TopN)
	}
	if cfg.Matching.DefaultWeights.Safety != 2 || cfg.Matching.DefaultWeights.Commute != 0 {
		t.Errorf("unexpected weights: %+v", cfg.Matching.DefaultWeights)
	}
	// untouched sections keep their defaults
	if cfg.Server.Address != "127.0.0.1:8080" {
		t.Errorf("expected default server address, got %s", cfg.Server.Address)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "config init") {
		t.Errorf("expected hint to run config init, got %v", err)
	}
}

func TestParse_DefaultFile(t *testing.T) {
	cfg, err := Parse([]byte(DefaultFile))
	if err != nil {
		t.Fatalf("DefaultFile should parse: %v", err)
	}
	if cfg.Matching.TopN != 10 {
		t.Errorf("expected TopN=10, got %d", cfg.Matching.TopN)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("expected one allowed origin, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("[matching\ntop_n = ")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("[matching]\ntop_n = 0\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Default()
	if got := cfg.Server.ReadTimeout().Seconds(); got != 15 {
		t.Errorf("ReadTimeout() = %v seconds, want 15", got)
	}
	if got := cfg.Server.WriteTimeout().Seconds(); got != 15 {
		t.Errorf("WriteTimeout() = %v seconds, want 15", got)
	}
}
