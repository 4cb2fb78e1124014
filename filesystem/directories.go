// Package filesystem resolves and prepares data directories.
package filesystem

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// OwnerReadWriteExec is the permission of directories created by the package.
const OwnerReadWriteExec = 0o700

// GetUserHomeDirectory returns the user home directory if one is set.
func GetUserHomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// GetCanonicalPath returns an os-specific full path.
// Leading ~ is replaced with the home directory and environment variables are expanded.
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// ExistOrCreate creates the directory at path unless it already exists.
func ExistOrCreate(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s is not a directory", path)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := fs.MkdirAll(path, OwnerReadWriteExec); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
