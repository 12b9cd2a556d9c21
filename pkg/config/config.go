// Package config models the flat, string-keyed configuration that drives
// template rendering. Keys follow the UPPER_SNAKE convention used inside
// templates; values are plain YAML scalars, lists or maps.
package config

import (
	"fmt"
	"sort"

	"github.com/twmb/murmur3"
	"gopkg.in/yaml.v3"
)

// PluginsKey holds the ordered list of enabled plugin names.
const PluginsKey = "PLUGINS"

// Config is a flat mapping from configuration key to value.
type Config map[string]any

// Defaults returns the built-in configuration. String values may contain
// template syntax; callers render them with RenderConfigValues before use.
func Defaults() Config {
	return Config{
		"PROJECT_NAME":    "envgen",
		"HOST":            "app.local",
		"ENABLE_HTTPS":    false,
		"DOCKER_REGISTRY": "docker.io/",
		"DOCKER_IMAGE":    "{{ DOCKER_REGISTRY }}{{ PROJECT_NAME }}:latest",
		"SECRET_KEY":      "{{ 24|random_string }}",
		"DB_HOST":         "db",
		"DB_PASSWORD":     "{{ 16|random_string }}",
		PluginsKey:        []any{},
	}
}

// Clone returns a deep copy of the configuration. Renderers snapshot their
// configuration this way so later mutations by the caller cannot leak into an
// in-flight render pass.
func (c Config) Clone() Config {
	if c == nil {
		return Config{}
	}
	raw, err := yaml.Marshal(map[string]any(c))
	if err != nil {
		// Config values come from YAML in the first place; a value that
		// cannot round-trip is a programming error.
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	out := Config{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return out
}

// Fingerprint returns a stable identity for the configuration contents.
// Equal configurations produce equal fingerprints regardless of map iteration
// order, so the renderer cache can skip rebuilding its template environment.
func (c Config) Fingerprint() string {
	raw, err := yaml.Marshal(map[string]any(c))
	if err != nil {
		panic(fmt.Sprintf("config: fingerprint: %v", err))
	}
	hi, lo := murmur3.Sum128(raw)
	return fmt.Sprintf("%016x%016x", hi, lo)
}

// Keys returns the configuration keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// EnabledPlugins returns the plugin names listed under PLUGINS, in order.
func (c Config) EnabledPlugins() []string {
	value, ok := c[PluginsKey]
	if !ok || value == nil {
		return nil
	}

	var names []string
	switch v := value.(type) {
	case []string:
		names = append(names, v...)
	case []any:
		for _, item := range v {
			names = append(names, fmt.Sprint(item))
		}
	case string:
		if v != "" {
			names = append(names, v)
		}
	}
	return names
}

// Merge overlays other on top of c, returning a new Config. c is not
// modified.
func (c Config) Merge(other Config) Config {
	merged := c.Clone()
	for key, value := range other {
		merged[key] = value
	}
	return merged
}
