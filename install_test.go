package pyext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stageLibraries(t *testing.T, workspace, libSubdir string, names ...string) {
	t.Helper()

	sourceDir := filepath.Join(workspace, releaseDir, libSubdir)
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatalf("failed to create staged lib dir: %v", err)
	}

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(sourceDir, name), []byte(name), 0o755); err != nil {
			t.Fatalf("failed to stage %s: %v", name, err)
		}
	}
}

func TestModulePath(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"fastmod", filepath.Join("dst", "fastmod")},
		{"mypkg.fastmod", filepath.Join("dst", "mypkg", "fastmod")},
		{"mypkg.libs.fastmod", filepath.Join("dst", "mypkg", "libs", "fastmod")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if path := ModulePath("dst", tc.name); path != tc.expected {
				t.Errorf("ModulePath(dst, %q) = %q, expected %q", tc.name, path, tc.expected)
			}
		})
	}
}

func TestMoveLibsFiltersByNameAndPredicates(t *testing.T) {
	workspace := t.TempDir()
	destRoot := t.TempDir()

	stageLibraries(t, workspace, "lib", "libfoo.so", "libfoo.so.1.2", "libbar.so", "readme.txt")

	ext, err := NewExtension(ExtensionConfig{
		Name:       "mypkg.libs.fastmod",
		CMakeLists: "native/CMakeLists.txt",
		Include: func(name string) bool {
			return strings.HasPrefix(name, "libfoo")
		},
	})
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}

	config := &BuildConfig{BuildTemp: workspace, DestRoot: destRoot}
	result := &BuildResult{}

	installed, err := moveLibs(config, ext, result)
	if err != nil {
		t.Fatalf("moveLibs returned error: %v", err)
	}

	if len(installed) != 2 {
		t.Fatalf("expected 2 installed libraries, got %d: %v", len(installed), installed)
	}

	destDir := filepath.Join(destRoot, "mypkg", "libs")
	for _, name := range []string{"libfoo.so", "libfoo.so.1.2", packageMarker} {
		if _, err := os.Stat(filepath.Join(destDir, name)); err != nil {
			t.Errorf("expected %s in destination: %v", name, err)
		}
	}
	for _, name := range []string{"libbar.so", "readme.txt"} {
		if _, err := os.Stat(filepath.Join(destDir, name)); err == nil {
			t.Errorf("did not expect %s in destination", name)
		}
	}
}

func TestMoveLibsExcludeCheckedAfterInclude(t *testing.T) {
	workspace := t.TempDir()
	destRoot := t.TempDir()

	stageLibraries(t, workspace, "lib", "libfoo.so", "libfoo.so.1.2")

	ext, err := NewExtension(ExtensionConfig{
		Name:       "mypkg.fastmod",
		CMakeLists: "native/CMakeLists.txt",
		Include: func(name string) bool {
			return strings.HasPrefix(name, "libfoo")
		},
		Exclude: func(name string) bool {
			return strings.Contains(name, ".so.")
		},
	})
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}

	installed, err := moveLibs(&BuildConfig{BuildTemp: workspace, DestRoot: destRoot}, ext, &BuildResult{})
	if err != nil {
		t.Fatalf("moveLibs returned error: %v", err)
	}

	if len(installed) != 1 || filepath.Base(installed[0]) != "libfoo.so" {
		t.Fatalf("expected only libfoo.so to survive, got %v", installed)
	}

	if _, err := os.Stat(filepath.Join(destRoot, "mypkg", "libfoo.so.1.2")); err == nil {
		t.Error("excluded library should not be copied")
	}
}

func TestMoveLibsAlwaysCreatesMarker(t *testing.T) {
	workspace := t.TempDir()
	destRoot := t.TempDir()

	// No staged libraries at all; the source directory does not even exist.
	ext, err := NewExtension(ExtensionConfig{
		Name:       "mypkg.fastmod",
		CMakeLists: "native/CMakeLists.txt",
	})
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}

	installed, err := moveLibs(&BuildConfig{BuildTemp: workspace, DestRoot: destRoot}, ext, &BuildResult{})
	if err != nil {
		t.Fatalf("moveLibs returned error: %v", err)
	}
	if len(installed) != 0 {
		t.Fatalf("expected no installed libraries, got %v", installed)
	}

	markerPath := filepath.Join(destRoot, "mypkg", packageMarker)
	info, err := os.Stat(markerPath)
	if err != nil {
		t.Fatalf("expected package marker at %s: %v", markerPath, err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty package marker, got %d bytes", info.Size())
	}
}

func TestMoveLibsOverwritesExistingFiles(t *testing.T) {
	workspace := t.TempDir()
	destRoot := t.TempDir()

	stageLibraries(t, workspace, "lib", "libfoo.so")

	destDir := filepath.Join(destRoot, "mypkg")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatalf("failed to create destination: %v", err)
	}
	if err := os.WriteFile(filepath.Join(destDir, "libfoo.so"), []byte("stale build"), 0o644); err != nil {
		t.Fatalf("failed to write stale library: %v", err)
	}

	ext, err := NewExtension(ExtensionConfig{
		Name:       "mypkg.fastmod",
		CMakeLists: "native/CMakeLists.txt",
	})
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}

	if _, err := moveLibs(&BuildConfig{BuildTemp: workspace, DestRoot: destRoot}, ext, &BuildResult{}); err != nil {
		t.Fatalf("moveLibs returned error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(destDir, "libfoo.so"))
	if err != nil {
		t.Fatalf("failed to read copied library: %v", err)
	}
	if string(content) != "libfoo.so" {
		t.Errorf("expected copied content, got %q", string(content))
	}
}

func TestMoveLibsHonorsLibSubdir(t *testing.T) {
	workspace := t.TempDir()
	destRoot := t.TempDir()

	stageLibraries(t, workspace, "lib64", "libfoo.so")

	ext, err := NewExtension(ExtensionConfig{
		Name:       "mypkg.fastmod",
		CMakeLists: "native/CMakeLists.txt",
		LibSubdir:  "lib64",
	})
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}

	installed, err := moveLibs(&BuildConfig{BuildTemp: workspace, DestRoot: destRoot}, ext, &BuildResult{})
	if err != nil {
		t.Fatalf("moveLibs returned error: %v", err)
	}
	if len(installed) != 1 {
		t.Fatalf("expected 1 installed library, got %v", installed)
	}
}
