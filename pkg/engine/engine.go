// Package engine wraps the pongo2 template engine with the semantics the
// environment generator needs: an ordered list of template roots with
// first-match-wins shadowing, strict handling of unset configuration keys,
// and engine globals usable from any template.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Root is a named template root. Name is only used in diagnostics.
type Root struct {
	Name string
	FS   fs.FS
}

// Option configures the engine before construction.
type Option func(*settings)

type settings struct {
	roots   []Root
	globals map[string]any
}

// WithRoot appends a template root. Roots are searched in the order they
// were added; the first root containing a template wins.
func WithRoot(name string, fsys fs.FS) Option {
	return func(cfg *settings) {
		if fsys == nil {
			return
		}
		cfg.roots = append(cfg.roots, Root{Name: name, FS: fsys})
	}
}

// WithBaseDir appends a template root backed by a directory on disk.
func WithBaseDir(name, dir string) Option {
	return func(cfg *settings) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		cfg.roots = append(cfg.roots, Root{Name: name, FS: os.DirFS(dir)})
	}
}

// WithGlobal seeds a value available to every template under the given name.
// Globals are also treated as defined by the strict-undefined check.
func WithGlobal(name string, value any) Option {
	return func(cfg *settings) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any)
		}
		cfg.globals[strings.TrimSpace(name)] = value
	}
}

// Engine renders templates resolved across an ordered set of roots.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	roots     []Root
	globals   map[string]any
	templates map[string]*pongo2.Template
}

// New constructs an Engine using the provided configuration options. At
// least one template root is required.
func New(options ...Option) (*Engine, error) {
	cfg := &settings{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if len(cfg.roots) == 0 {
		return nil, errors.New("engine: need at least one template root")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.roots))
	for _, root := range cfg.roots {
		loaders = append(loaders, pongo2.NewFSLoader(root.FS))
	}

	engine := &Engine{
		set:       pongo2.NewSet("envgen", loaders...),
		roots:     cfg.roots,
		globals:   make(map[string]any),
		templates: make(map[string]*pongo2.Template),
	}
	// Output is plain configuration text (YAML, JSON, properties), never
	// HTML. Autoescaping would mangle quotes and ampersands.
	pongo2.SetAutoescape(false)
	registerDefaultFilters()

	engine.set.Globals = make(pongo2.Context)
	for name, value := range cfg.globals {
		engine.SetGlobal(name, value)
	}

	return engine, nil
}

// SetGlobal registers or replaces an engine global after construction.
// Renderers use this to expose functions that close over their own state.
func (e *Engine) SetGlobal(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.globals[name] = value
	e.set.Globals[name] = value
}

// Roots returns the ordered template roots.
func (e *Engine) Roots() []Root {
	out := make([]Root, len(e.roots))
	copy(out, e.roots)
	return out
}

// ReadSource returns the raw text of the template at path, resolved across
// the roots in order.
func (e *Engine) ReadSource(path string) (string, error) {
	for _, root := range e.roots {
		raw, err := fs.ReadFile(root.FS, path)
		if err == nil {
			return string(raw), nil
		}
	}
	return "", fmt.Errorf("engine: template %q not found in any template root", path)
}

// Lookup reports whether a template exists at path in any root.
func (e *Engine) Lookup(path string) bool {
	_, err := e.ReadSource(path)
	return err == nil
}

// RenderTemplate resolves the template at path and renders it against ctx.
// Referencing a key that is neither in ctx nor an engine global fails with a
// *MissingKeyError before the engine executes anything.
func (e *Engine) RenderTemplate(path string, ctx map[string]any) (string, error) {
	src, err := e.ReadSource(path)
	if err != nil {
		return "", err
	}
	if err := e.checkStrict(src, path, ctx, map[string]bool{path: true}); err != nil {
		return "", err
	}

	tmpl, err := e.getTemplate(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, ctx)
}

// RenderString renders a one-off template string against ctx with the same
// strict-undefined contract as RenderTemplate.
func (e *Engine) RenderString(text string, ctx map[string]any) (string, error) {
	if err := e.checkStrict(text, "<string>", ctx, map[string]bool{}); err != nil {
		return "", err
	}

	tmpl, err := e.set.FromString(text)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, ctx)
}

func (e *Engine) execute(tmpl *pongo2.Template, ctx map[string]any) (string, error) {
	var buf bytes.Buffer

	e.mu.RLock()
	err := tmpl.ExecuteWriter(pongo2.Context(ctx), &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// checkStrict enforces strict-undefined semantics. pongo2 silently renders
// unset variables as empty strings, so referenced identifiers are collected
// up front and verified against the context and globals. Included and
// extended templates are checked transitively.
func (e *Engine) checkStrict(src, name string, ctx map[string]any, visited map[string]bool) error {
	known := func(ident string) bool {
		if _, ok := ctx[ident]; ok {
			return true
		}
		e.mu.RLock()
		_, ok := e.globals[ident]
		e.mu.RUnlock()
		return ok
	}

	if missing := missingIdents(src, known); len(missing) > 0 {
		return &MissingKeyError{Key: missing[0], Template: name}
	}

	for _, ref := range referencedTemplates(src) {
		// The FS loader resolves includes both against the root and
		// relative to the including template; the check must follow both.
		resolved := ref
		refSrc, err := e.ReadSource(resolved)
		if err != nil {
			resolved = path.Join(path.Dir(name), ref)
			refSrc, err = e.ReadSource(resolved)
		}
		if err != nil {
			// Let the engine report unresolvable includes with its own
			// parse error.
			continue
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true
		if err := e.checkStrict(refSrc, resolved, ctx, visited); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, err
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// MissingKeyError reports a template reference to an unset configuration
// key.
type MissingKeyError struct {
	Key      string
	Template string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing configuration value: %s", e.Key)
}
