// Package env materializes the rendered environment on disk. It walks the
// renderer's template tree, writes rendered files to a mirrored layout under
// <root>/env, and stamps the result with the tool version.
package env

import (
	"os"
	"path/filepath"

	"github.com/goliatone/go-envgen/internal/output"
	envgenerrors "github.com/goliatone/go-envgen/pkg/errors"
	"github.com/goliatone/go-envgen/pkg/plugin"
	"github.com/goliatone/go-envgen/pkg/renderer"
)

// VersionFilename is the version marker file at the top of the environment.
const VersionFilename = "version"

// ManifestFilename is the fixed top-level manifest rendered with the
// category directories.
const ManifestFilename = "kustomization.yml"

// Prefixes are the top-level categories rendered into the environment, in
// order.
var Prefixes = []string{
	"android/",
	"apps/",
	"build/",
	"dev/",
	"k8s/",
	"local/",
	"webui/",
	VersionFilename,
	ManifestFilename,
}

// Save renders the full environment under <root>/env: every category
// prefix, the version marker and the top-level manifest, then the apps and
// build subtrees of each enabled plugin under plugins/<name>/. The first
// failed render aborts the pass.
func Save(rend *renderer.Renderer, root string) error {
	base := BaseDir(root)
	for _, prefix := range Prefixes {
		if err := SaveAllFrom(rend, prefix, base); err != nil {
			return err
		}
	}

	for _, p := range rend.Plugins() {
		if p.Templates == nil {
			continue
		}
		if err := SavePluginTemplates(rend, p, root); err != nil {
			return err
		}
	}

	output.Info("Environment generated", "path", base)
	return nil
}

// SavePluginTemplates renders a plugin's apps and build subtrees under
// plugins/<plugin name>/ inside the environment. Other plugin template
// directories exist for includes only and are not materialized.
func SavePluginTemplates(rend *renderer.Renderer, p plugin.Plugin, root string) error {
	pluginsRoot := PathJoin(root, "plugins")
	for _, subdir := range []string{"apps", "build"} {
		prefix := p.Name + "/" + subdir
		if err := SaveAllFrom(rend, prefix, pluginsRoot); err != nil {
			return err
		}
	}
	return nil
}

// SaveAllFrom renders every template whose path starts with prefix and
// stores it with the same hierarchy under outputRoot.
func SaveAllFrom(rend *renderer.Renderer, prefix, outputRoot string) error {
	for _, template := range rend.Templates(prefix) {
		rendered, err := rend.RenderFile(template)
		if err != nil {
			return err
		}
		dst := filepath.Join(outputRoot, filepath.FromSlash(template))
		if err := WriteTo(rendered, dst); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes content to path, creating parent directories as needed.
func WriteTo(content, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return envgenerrors.Wrap(err, "Could not create directory "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return envgenerrors.Wrap(err, "Could not write file "+path)
	}
	return nil
}
