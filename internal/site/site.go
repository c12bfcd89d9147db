// Package site loads and validates the site configuration that describes
// the website being built. The configuration is caller-owned and read-only
// to the publishing core.
package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

// ConfigFileName is the file that anchors a site project's root.
const ConfigFileName = "site.yaml"

// Config describes the website being built: its identity and the shape of
// its content (the ordered set of section ids the site declares).
type Config struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	ImagePath   string   `yaml:"image_path,omitempty"`
	Sections    []string `yaml:"sections"`
}

// SectionIDs returns the declared section ids as typed identifiers, in
// declaration order.
func (c *Config) SectionIDs() []content.SectionID {
	ids := make([]content.SectionID, len(c.Sections))
	for i, s := range c.Sections {
		ids[i] = content.SectionID(s)
	}
	return ids
}

// Load reads configuration from the given path. Environment variables
// referenced as ${VAR} in the file are expanded after loading .env and
// .env.local (both optional).
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path) // #nosec G304 - path is caller-chosen config location
	if err != nil {
		return nil, fmt.Errorf("read site configuration: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals configuration from YAML, expands environment references,
// applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal site configuration: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
}

// Validate checks the configuration for the mistakes a site author is most
// likely to make.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("site configuration: name must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Sections))
	for _, id := range c.Sections {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("site configuration: sections must not contain empty ids")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("site configuration: duplicate section id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// loadEnvFiles loads .env then .env.local into the process environment.
// Existing variables are never overwritten; missing files are not an error.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		_ = godotenv.Load(name)
	}
}
