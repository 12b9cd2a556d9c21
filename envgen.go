// Package envgen renders a tree of configuration templates into a
// materialized environment directory. Templates come from the built-in core
// set plus the template roots of enabled plugins; values come from a flat
// string-keyed configuration. Plugins can also contribute named patches that
// core templates splice in at designated extension points.
package envgen

import (
	"path"

	"github.com/goliatone/go-envgen/pkg/config"
	"github.com/goliatone/go-envgen/pkg/env"
	"github.com/goliatone/go-envgen/pkg/plugin"
	"github.com/goliatone/go-envgen/pkg/renderer"
)

// Config is the flat configuration mapping used by every render call.
type Config = config.Config

// Plugin is an external collaborator contributing templates and patches.
type Plugin = plugin.Plugin

var defaultCache renderer.Cache

// Instance returns a renderer for cfg, reusing the previous one when the
// configuration is unchanged. The renderer searches the core templates
// first, then each enabled plugin's root in enumeration order.
func Instance(cfg Config) (*renderer.Renderer, error) {
	return defaultCache.Instance(cfg, renderer.WithCoreRoot(CoreTemplates()))
}

// Reset drops the cached renderer. Intended for tests and for callers that
// mutate the plugin registry after rendering.
func Reset() {
	defaultCache.Reset()
}

// RegisterPlugin adds a plugin to the default registry.
func RegisterPlugin(p Plugin) error {
	return plugin.Register(p)
}

// Save renders the full environment, including version information, under
// <root>/env.
func Save(root string, cfg Config) error {
	rend, err := Instance(cfg)
	if err != nil {
		return err
	}
	return env.Save(rend, root)
}

// RenderFile returns the rendered contents of the template at the given
// path segments.
func RenderFile(cfg Config, parts ...string) (string, error) {
	rend, err := Instance(cfg)
	if err != nil {
		return "", err
	}
	return rend.RenderFile(path.Join(parts...))
}

// RenderString renders a one-off template string against cfg.
func RenderString(cfg Config, text string) (string, error) {
	rend, err := Instance(cfg)
	if err != nil {
		return "", err
	}
	return rend.RenderString(text)
}

// RenderUnknown renders string values as templates and passes every other
// value through unchanged.
func RenderUnknown(cfg Config, value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	return RenderString(cfg, text)
}

// RenderConfigValues renders the string values of cfg in place. Default
// configuration values may contain template syntax (generated secrets,
// values derived from other keys); this resolves them to plain strings.
func RenderConfigValues(cfg Config) error {
	for _, key := range cfg.Keys() {
		rendered, err := RenderUnknown(cfg, cfg[key])
		if err != nil {
			return err
		}
		cfg[key] = rendered
	}
	return nil
}

// TemplatePath joins path segments into a template identifier usable with
// RenderFile and ReadTemplate. Template identifiers always use forward
// slashes, independent of the host OS.
func TemplatePath(parts ...string) string {
	return path.Join(parts...)
}

// ReadTemplate returns the raw, unrendered content of a core template.
func ReadTemplate(parts ...string) (string, error) {
	raw, err := embeddedTemplates.ReadFile(path.Join("templates", TemplatePath(parts...)))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
