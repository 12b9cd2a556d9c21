package plugin

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-envgen/pkg/config"
)

// Registry stores plugins by name while preserving registration order, which
// is the enumeration order used for template roots and patch composition.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin by its Name. Duplicate names return an error.
func (r *Registry) Register(p Plugin) error {
	if p.Name == "" {
		return fmt.Errorf("plugin: plugin name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[p.Name]; exists {
		return fmt.Errorf("plugin: plugin %q already registered", p.Name)
	}

	r.plugins[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(p Plugin) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return Plugin{}, fmt.Errorf("plugin: plugin %q not found", name)
	}
	return p, nil
}

// Has reports whether a plugin is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[name]
	return ok
}

// Names returns the registered plugin names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Enabled returns the registered plugins that the configuration enables,
// in registration order. Names enabled in the configuration but not
// registered are skipped.
func (r *Registry) Enabled(cfg config.Config) []Plugin {
	enabled := make(map[string]struct{})
	for _, name := range cfg.EnabledPlugins() {
		enabled[name] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Plugin
	for _, name := range r.order {
		if _, ok := enabled[name]; ok {
			out = append(out, r.plugins[name])
		}
	}
	return out
}

// Patches returns the ordered (plugin, text) contributions for the named
// patch across all enabled plugins.
func (r *Registry) Patches(cfg config.Config, name string) []Patch {
	var out []Patch
	for _, p := range r.Enabled(cfg) {
		if text, ok := p.PatchText(name); ok {
			out = append(out, Patch{Plugin: p.Name, Text: text})
		}
	}
	return out
}

// Default is the process-wide registry most callers use.
var Default = NewRegistry()

// Register adds a plugin to the default registry.
func Register(p Plugin) error { return Default.Register(p) }

// MustRegister adds a plugin to the default registry, panicking on failure.
func MustRegister(p Plugin) { Default.MustRegister(p) }

// Enabled lists the enabled plugins from the default registry.
func Enabled(cfg config.Config) []Plugin { return Default.Enabled(cfg) }

// Patches lists the named patch contributions from the default registry.
func Patches(cfg config.Config, name string) []Patch { return Default.Patches(cfg, name) }

// Reset replaces the default registry with an empty one. Intended for tests.
func Reset() { Default = NewRegistry() }
