package renderer

import (
	"io/fs"
	"sort"
	"strings"
)

// IsPartOfEnv reports whether a template path belongs in the rendered
// environment. Dotfiles, bytecode caches and partials (templates that exist
// only to be included by others) are excluded. Paths use forward slashes
// regardless of OS: they are template identifiers, not filesystem paths.
func IsPartOfEnv(path string) bool {
	parts := strings.Split(path, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return false
		}
		if part == "__pycache__" || part == "partials" {
			return false
		}
	}
	return !strings.HasSuffix(parts[len(parts)-1], ".pyc")
}

// Templates returns the renderable template paths starting with prefix,
// resolved across all template roots with first-match-wins shadowing. The
// result is sorted for deterministic output.
func (r *Renderer) Templates(prefix string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, root := range r.engine.Roots() {
		_ = fs.WalkDir(root.FS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				name := d.Name()
				if path != "." && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "partials") {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasPrefix(path, prefix) {
				return nil
			}
			if !IsPartOfEnv(path) {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}
			out = append(out, path)
			return nil
		})
	}

	sort.Strings(out)
	return out
}
