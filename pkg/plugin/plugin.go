// Package plugin describes the external collaborators that extend the core
// template set. A plugin contributes an optional template root and any number
// of named patches spliced into core templates at render time.
package plugin

import "io/fs"

// Plugin is a single registered extension.
type Plugin struct {
	// Name identifies the plugin. Rendered plugin templates land under
	// plugins/<Name>/ in the environment.
	Name string

	// Templates is the plugin's template root, or nil when the plugin only
	// contributes patches. The root must contain a top-level directory named
	// after the plugin, e.g. myplugin/apps/... and myplugin/build/...
	Templates fs.FS

	// Patches maps patch names to template text. The text is rendered
	// against the configuration before being spliced into core templates.
	Patches map[string]string
}

// PatchText returns the plugin's contribution to the named patch.
func (p Plugin) PatchText(name string) (string, bool) {
	text, ok := p.Patches[name]
	return text, ok
}

// Patch pairs a patch contribution with the plugin that provided it, so
// render failures can name their origin.
type Patch struct {
	Plugin string
	Text   string
}
