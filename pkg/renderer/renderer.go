// Package renderer ties the template engine, the configuration and the
// plugin registry together. A Renderer holds a configuration snapshot and an
// engine built over the core template root plus each enabled plugin's root,
// and resolves plugin patches referenced from inside templates.
package renderer

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-envgen/internal/output"
	"github.com/goliatone/go-envgen/internal/version"
	"github.com/goliatone/go-envgen/pkg/config"
	"github.com/goliatone/go-envgen/pkg/engine"
	envgenerrors "github.com/goliatone/go-envgen/pkg/errors"
	"github.com/goliatone/go-envgen/pkg/plugin"
)

// VersionGlobal is the engine global holding the running tool version.
const VersionGlobal = "ENVGEN_VERSION"

// Option configures renderer construction.
type Option func(*settings)

type settings struct {
	core     fs.FS
	registry *plugin.Registry
}

// WithCoreRoot sets the core template root, searched before any plugin root.
func WithCoreRoot(fsys fs.FS) Option {
	return func(cfg *settings) {
		cfg.core = fsys
	}
}

// WithRegistry overrides the plugin registry. Defaults to plugin.Default.
func WithRegistry(registry *plugin.Registry) Option {
	return func(cfg *settings) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// Renderer renders templates and patches against one configuration
// snapshot. It is not safe for concurrent use; the tool is single-threaded
// by design.
type Renderer struct {
	config      config.Config
	fingerprint string
	engine      *engine.Engine
	registry    *plugin.Registry
	plugins     []plugin.Plugin

	// first error raised by a patch() call during the current render
	patchErr error
}

// New builds a renderer over the core root plus the template root of every
// plugin the configuration enables, in registration order. The
// configuration is snapshotted; later caller mutations are not observed.
func New(cfg config.Config, options ...Option) (*Renderer, error) {
	s := settings{registry: plugin.Default}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}

	enabled := s.registry.Enabled(cfg)

	var engineOptions []engine.Option
	if s.core != nil {
		engineOptions = append(engineOptions, engine.WithRoot("core", s.core))
	}
	for _, p := range enabled {
		if p.Templates != nil {
			engineOptions = append(engineOptions, engine.WithRoot(p.Name, p.Templates))
		}
	}

	eng, err := engine.New(engineOptions...)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		config:      cfg.Clone(),
		fingerprint: cfg.Fingerprint(),
		engine:      eng,
		registry:    s.registry,
		plugins:     enabled,
	}

	eng.SetGlobal(VersionGlobal, version.Version)
	eng.SetGlobal("patch", r.patchFn)
	eng.SetGlobal("walk_templates", r.walkFn)

	return r, nil
}

// Config returns the renderer's configuration snapshot.
func (r *Renderer) Config() config.Config {
	return r.config
}

// Fingerprint returns the identity of the snapshotted configuration.
func (r *Renderer) Fingerprint() string {
	return r.fingerprint
}

// Plugins returns the enabled plugins, in enumeration order.
func (r *Renderer) Plugins() []plugin.Plugin {
	return r.plugins
}

// RenderFile looks up the template at path across the template roots and
// renders it against the configuration.
func (r *Renderer) RenderFile(path string) (string, error) {
	if !r.engine.Lookup(path) {
		output.Error("Error loading template", "template", path)
		return "", envgenerrors.Newf("Template not found: %s", path)
	}

	r.patchErr = nil
	rendered, err := r.engine.RenderTemplate(path, r.config)
	if r.patchErr != nil {
		return "", r.patchErr
	}
	if err != nil {
		var missing *engine.MissingKeyError
		if errors.As(err, &missing) {
			return "", envgenerrors.Newf("Missing configuration value: %s", missing.Key)
		}
		// Engine errors are returned unchanged so callers see the original
		// syntax diagnostics.
		output.Error("Error rendering template", "template", path)
		return "", err
	}
	return rendered, nil
}

// RenderString renders a one-off template string against the configuration.
func (r *Renderer) RenderString(text string) (string, error) {
	r.patchErr = nil
	rendered, err := r.engine.RenderString(text, r.config)
	if r.patchErr != nil {
		return "", r.patchErr
	}
	if err != nil {
		var missing *engine.MissingKeyError
		if errors.As(err, &missing) {
			return "", envgenerrors.Newf("Missing configuration value: %s", missing.Key)
		}
		return "", err
	}
	return rendered, nil
}

// Patch renders every contribution registered under name across the enabled
// plugins, in plugin enumeration order, and joins them with separator. When
// the joined result is non-empty, suffix is appended. Patch texts are
// rendered to plain strings first; the result is spliced into the parent
// template verbatim, never re-parsed.
func (r *Renderer) Patch(name, separator, suffix string) (string, error) {
	var parts []string
	for _, entry := range r.registry.Patches(r.config, name) {
		rendered, err := r.engine.RenderString(entry.Text, r.config)
		if err != nil {
			var missing *engine.MissingKeyError
			if errors.As(err, &missing) {
				return "", envgenerrors.Newf(
					"Missing configuration value: %s in patch %q from plugin %s",
					missing.Key, name, entry.Plugin,
				)
			}
			output.Error("Error rendering patch", "patch", name, "plugin", entry.Plugin)
			return "", err
		}
		parts = append(parts, rendered)
	}

	joined := strings.Join(parts, separator)
	if joined != "" {
		joined += suffix
	}
	return joined, nil
}

// patchFn backs the patch(...) template global: patch(name), patch(name,
// separator) or patch(name, separator, suffix). Errors are recorded and
// surfaced once the surrounding render returns.
func (r *Renderer) patchFn(args ...*pongo2.Value) *pongo2.Value {
	if len(args) == 0 {
		r.fail(envgenerrors.New("patch() requires a patch name"))
		return pongo2.AsValue("")
	}

	name := args[0].String()
	separator := "\n"
	suffix := ""
	if len(args) > 1 {
		separator = args[1].String()
	}
	if len(args) > 2 {
		suffix = args[2].String()
	}

	rendered, err := r.Patch(name, separator, suffix)
	if err != nil {
		r.fail(err)
		return pongo2.AsValue("")
	}
	return pongo2.AsValue(rendered)
}

// walkFn backs the walk_templates(prefix) template global, yielding the
// renderable template paths under prefix.
func (r *Renderer) walkFn(args ...*pongo2.Value) *pongo2.Value {
	if len(args) == 0 {
		return pongo2.AsValue([]string{})
	}
	return pongo2.AsValue(r.Templates(args[0].String()))
}

func (r *Renderer) fail(err error) {
	if r.patchErr == nil {
		r.patchErr = err
	}
}
