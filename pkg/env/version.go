package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-envgen/internal/output"
	"github.com/goliatone/go-envgen/internal/version"
)

// Version returns the version of the environment materialized at root. An
// environment that was never rendered reports "0".
func Version(root string) string {
	raw, err := os.ReadFile(PathJoin(root, VersionFilename))
	if err != nil {
		return "0"
	}
	return strings.TrimSpace(string(raw))
}

// IsUpToDate reports whether the materialized environment matches the
// running tool version.
func IsUpToDate(root string) bool {
	return Version(root) == version.Version
}

// CheckIsUpToDate warns when the materialized environment is stale. The
// condition is never fatal: the tool keeps operating on the existing tree.
func CheckIsUpToDate(root string) {
	if IsUpToDate(root) {
		return
	}
	output.Alert(fmt.Sprintf(
		"The environment stored at %s is not up-to-date: it is at v%s while the tool is at v%s. "+
			"Regenerate it by running:\n\n    envgen save",
		BaseDir(root), Version(root), version.Version,
	))
}
