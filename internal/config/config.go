package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when no --config flag
// is given. Relative to the working directory, matching how the tool is
// normally run from a staging laptop next to its config file.
const DefaultPath = "config.yaml"

// Recognized configuration keys. Every lookup in the codebase goes
// through one of these constants so the full key surface is documented
// in one place.
const (
	KeyDefaultUsername = "credentials.default_username"
	KeyDefaultPassword = "credentials.default_password"
	KeyNewUsername     = "credentials.new_username"
	KeyNewPassword     = "credentials.new_password"

	KeyWebAddress  = "web_interface.ip_address"
	KeyWebProtocol = "web_interface.protocol"

	KeyChirpstackAddress  = "chirpstack.server_address"
	KeyChirpstackPort     = "chirpstack.server_port"
	KeyChirpstackProtocol = "chirpstack.protocol"

	KeyWiFiPassword   = "wifi.password"
	KeyWiFiEncryption = "wifi.encryption"
)

// Config is a read-only view over a loaded YAML configuration document.
// There is deliberately no mutation API: the file is the single source
// of truth and is only ever read once, at startup.
type Config struct {
	data map[string]any
	path string
}

// Load reads and parses the configuration file at path.
// A missing file or a parse error is returned as an error; callers
// treat this as fatal before any workflow runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if doc == nil {
		doc = make(map[string]any)
	}

	return &Config{data: doc, path: path}, nil
}

// New builds a Config from an already-parsed document. Used by tests
// and by callers that source configuration from somewhere other than a
// file on disk.
func New(doc map[string]any) *Config {
	if doc == nil {
		doc = make(map[string]any)
	}
	return &Config{data: doc}
}

// Path returns the file the configuration was loaded from, or the
// empty string when it was built in memory.
func (c *Config) Path() string {
	return c.path
}

// Get resolves a dotted key (e.g. "credentials.new_password") against
// the nested document. A missing key, or an intermediate node that is
// not a mapping, yields def rather than an error.
func (c *Config) Get(key string, def any) any {
	value, ok := c.lookup(key)
	if !ok {
		return def
	}
	return value
}

// GetString resolves a dotted key to a string. Non-string values
// (including present-but-null) yield def.
func (c *Config) GetString(key, def string) string {
	value, ok := c.lookup(key)
	if !ok {
		return def
	}
	s, ok := value.(string)
	if !ok {
		return def
	}
	return s
}

// GetInt resolves a dotted key to an int. YAML decodes integers as int
// but be tolerant of the other numeric shapes yaml.v3 can produce.
func (c *Config) GetInt(key string, def int) int {
	value, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Has reports whether a dotted key is present with a non-empty value.
// Used for the hard preconditions on secrets: a key set to "" counts
// as absent.
func (c *Config) Has(key string) bool {
	value, ok := c.lookup(key)
	if !ok || value == nil {
		return false
	}
	if s, isStr := value.(string); isStr && s == "" {
		return false
	}
	return true
}

func (c *Config) lookup(key string) (any, bool) {
	var current any = c.data
	start := 0
	for i := 0; i <= len(key); i++ {
		if i < len(key) && key[i] != '.' {
			continue
		}
		part := key[start:i]
		start = i + 1

		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
