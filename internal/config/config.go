// Package config provides configuration loading and validation for the portfolio backend.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPerPage is the GitHub page size used when none is configured.
	DefaultPerPage = 100
	// DefaultGitHubAPIBaseURL is the GitHub REST API root.
	DefaultGitHubAPIBaseURL = "https://api.github.com/"
	// DefaultPort is the HTTP port for the serve command.
	DefaultPort = 8080
)

// Config is the process-wide configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	GitHub       GitHubConfig `json:"github" yaml:"github" toml:"github"`
	Resume       ResumeConfig `json:"resume" yaml:"resume" toml:"resume"`
	ResumeParser ParserConfig `json:"resume_parser" yaml:"resume_parser" toml:"resume_parser"`
	Server       ServerConfig `json:"server" yaml:"server" toml:"server"`
}

// GitHubConfig configures the repository catalog.
type GitHubConfig struct {
	ProfileURL  string `json:"profile_url,omitempty" yaml:"profile_url" toml:"profile_url"`
	PerPage     int    `json:"per_page,omitempty" yaml:"per_page" toml:"per_page" validate:"gte=0,lte=100"`
	RecentCount int    `json:"recent_count,omitempty" yaml:"recent_count" toml:"recent_count" validate:"gte=0"`
	Token       string `json:"token,omitempty" yaml:"token" toml:"token"`
	APIBaseURL  string `json:"api_base_url,omitempty" yaml:"api_base_url" toml:"api_base_url" validate:"omitempty,url"`
}

// ResumeConfig configures where the resume document lives.
type ResumeConfig struct {
	DocxPath       string `json:"docx_path,omitempty" yaml:"docx_path" toml:"docx_path"`
	GoogleAPIKey   string `json:"google_api_key,omitempty" yaml:"google_api_key" toml:"google_api_key"`
	ExtractRawText bool   `json:"extract_raw_text,omitempty" yaml:"extract_raw_text" toml:"extract_raw_text"`
}

// ParserConfig configures the remote resume parsing service.
type ParserConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url" toml:"base_url" validate:"omitempty,url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port       int    `json:"port,omitempty" yaml:"port" toml:"port" validate:"gte=0,lte=65535"`
	CORSOrigin string `json:"cors_origin,omitempty" yaml:"cors_origin" toml:"cors_origin"`
}

// Load reads configuration from a JSON, YAML or TOML file, picked by extension.
// An empty path yields an empty Config so that env vars and defaults can fill it.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.GitHub.PerPage == 0 {
		c.GitHub.PerPage = DefaultPerPage
	}
	if c.GitHub.APIBaseURL == "" {
		c.GitHub.APIBaseURL = DefaultGitHubAPIBaseURL
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
}

// Validate checks formats and ranges. Presence of the settings a component
// needs is checked by that component, so a server can run with only one of
// the two data sources configured.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &Error{
			Field:   first.Namespace(),
			Message: fmt.Sprintf("failed %q check (value %v)", first.Tag(), first.Value()),
		}
	}
	return &Error{Field: "config", Message: err.Error()}
}

// Resolve loads the file at path, overlays environment variables, applies
// defaults and validates the result.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
