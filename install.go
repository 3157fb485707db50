package pyext

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// packageMarker is the file that makes the destination directory an
// importable Python package.
const packageMarker = "__init__.py"

// ModulePath maps a dotted extension name to its file path under the
// destination root, without any file suffix ("mypkg.libs.fastmod" under
// "/dst" becomes "/dst/mypkg/libs/fastmod"). The parent directory of this
// path is where the extension's libraries are installed.
func ModulePath(destRoot, name string) string {
	parts := strings.Split(name, ".")
	return filepath.Join(append([]string{destRoot}, parts...)...)
}

// moveLibs copies the shared libraries the install phase staged under
// <workspace>/release/<LibSubdir> into the package directory derived from
// the extension name.
//
// The destination directory and its package marker are always created,
// even when no library survives the filters: an importable, empty package
// is the correct outcome for an extension whose predicates rejected
// everything. Include is consulted first, Exclude only on names Include
// accepted; both see the bare filename. Existing destination files are
// overwritten.
func moveLibs(config *BuildConfig, ext *Extension, result *BuildResult) ([]string, error) {
	config.logger().Info("Moving libraries to specified module path...", "extension", ext.Name)

	sourceDir := filepath.Join(config.workspace(), releaseDir, ext.LibSubdir)
	destDir := filepath.Dir(ModulePath(config.DestRoot, ext.Name))

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", destDir, err)
	}

	markerPath := filepath.Join(destDir, packageMarker)
	if err := os.WriteFile(markerPath, nil, 0o644); err != nil {
		return nil, fmt.Errorf("failed to create package marker %s: %w", markerPath, err)
	}

	entries, err := os.ReadDir(sourceDir)
	if errors.Is(err, fs.ErrNotExist) {
		// Nothing staged; the project may install headers only
		entries = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read staged libraries from %s: %w", sourceDir, err)
	}

	var installed []string

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		if !IsSharedLibrary(name) {
			continue
		}

		if ext.Include != nil && !ext.Include(name) {
			continue
		}
		if ext.Exclude != nil && ext.Exclude(name) {
			continue
		}

		destPath := filepath.Join(destDir, name)
		if err := copyFile(filepath.Join(sourceDir, name), destPath); err != nil {
			return nil, err
		}

		result.Output = append(result.Output, fmt.Sprintf("installed %s", destPath))
		installed = append(installed, destPath)
	}

	return installed, nil
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
