package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"save", "render", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestDefaultRoot_EnvironmentOverride(t *testing.T) {
	t.Setenv("ENVGEN_ROOT", filepath.Join("some", "project"))

	assert.Equal(t, filepath.Join("some", "project"), defaultRoot())
}

func TestProjectRoot_ReadsPersistentFlag(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("root", "/tmp/project"))

	assert.Equal(t, "/tmp/project", projectRoot(cmd))
}
