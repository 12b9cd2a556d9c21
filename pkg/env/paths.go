package env

import (
	"os"
	"path/filepath"
)

// RootDir returns the absolute project root directory.
func RootDir(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	return abs
}

// BaseDir returns the environment base directory, <root>/env.
func BaseDir(root string) string {
	return filepath.Join(RootDir(root), "env")
}

// PathJoin returns the absolute path of a file inside the environment.
func PathJoin(root string, parts ...string) string {
	return filepath.Join(append([]string{BaseDir(root)}, parts...)...)
}

// DataPath returns the absolute path of a file inside the project data
// directory, <root>/data.
func DataPath(root string, parts ...string) string {
	return filepath.Join(append([]string{RootDir(root), "data"}, parts...)...)
}

// EnsureDataDir creates the named data subdirectory and returns its path.
func EnsureDataDir(root string, parts ...string) (string, error) {
	path := DataPath(root, parts...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}
