package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-envgen/internal/version"
	"github.com/goliatone/go-envgen/pkg/config"
	"github.com/goliatone/go-envgen/pkg/env"
)

func TestVersion_NeverRendered(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, "0", env.Version(root))
	assert.False(t, env.IsUpToDate(root))
}

func TestVersion_AfterSave(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{
		"PROJECT_NAME": "myapp",
		"HOST":         "myapp.local",
		"DOCKER_IMAGE": "docker.io/myapp:latest",
	}

	require.NoError(t, env.Save(newRenderer(t, cfg, nil), root))

	assert.Equal(t, version.Version, env.Version(root))
	assert.True(t, env.IsUpToDate(root))
}

func TestVersion_TrimsWhitespace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(env.BaseDir(root), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.BaseDir(root), env.VersionFilename),
		[]byte("  1.2.3\n"), 0o644,
	))

	assert.Equal(t, "1.2.3", env.Version(root))
	assert.False(t, env.IsUpToDate(root))
}
