package renderer

import "github.com/goliatone/go-envgen/pkg/config"

// Cache memoizes one renderer keyed by configuration fingerprint. Building a
// renderer scans every template root, so callers rendering many files with
// the same configuration reuse the previous instance. Single writer: the
// cache is not safe for concurrent use.
type Cache struct {
	fingerprint string
	renderer    *Renderer
}

// Instance returns the cached renderer when the configuration fingerprint is
// unchanged, otherwise builds a fresh renderer with the given options and
// caches it.
func (c *Cache) Instance(cfg config.Config, options ...Option) (*Renderer, error) {
	fingerprint := cfg.Fingerprint()
	if c.renderer != nil && c.fingerprint == fingerprint {
		return c.renderer, nil
	}

	r, err := New(cfg, options...)
	if err != nil {
		return nil, err
	}

	c.fingerprint = fingerprint
	c.renderer = r
	return r, nil
}

// Reset drops the cached renderer, forcing the next Instance call to
// rebuild.
func (c *Cache) Reset() {
	c.fingerprint = ""
	c.renderer = nil
}
