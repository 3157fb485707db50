package pyext

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// BuildResult contains the output and status of a build operation.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from the external tool invocations
//   - Artifacts list of shared libraries relocated into the package tree
//   - Error information if the build failed
type BuildResult struct {
	Success             bool     // True if build completed successfully
	Output              []string // Lines of output from the build process
	Artifacts           []string // Paths of relocated shared libraries
	Error               error    // Error if build failed, nil otherwise
	MissingDependencies []string // Names of build-time tools that were missing
}

// BuildConfig contains configuration the host packaging tool owns.
//
// Source and destination paths:
//   - BuildTemp: scratch workspace, deleted and recreated on every run
//   - DestRoot: root of the final package layout (e.g. site-packages)
//
// Python environment:
//   - PythonPath: interpreter path forwarded to CMake as
//     -DPYTHON_EXECUTABLE so the native build links against the matching
//     runtime; defaults to the python3 found on PATH
//
// Build behavior:
//   - Env: extra environment variables set for each child process
//   - Verbose: record the exact command lines in the build output
//   - Logger: destination for progress notices, defaults to log.Default()
type BuildConfig struct {
	BuildTemp string // Scratch build workspace
	DestRoot  string // Root of the destination package layout

	PythonPath string // Python interpreter forwarded to the native build

	Env     map[string]string // Environment variables for build commands
	Verbose bool              // Record command lines in the output
	Logger  *log.Logger       // Progress logging, nil means log.Default()
}

// workspace returns the absolute build workspace path. The phased cmake
// invocations run with the workspace as working directory, so relative
// BuildTemp values are anchored once here.
func (c *BuildConfig) workspace() string {
	if c.BuildTemp == "" {
		return ""
	}
	abs, err := filepath.Abs(c.BuildTemp)
	if err != nil {
		return c.BuildTemp
	}
	return abs
}

func (c *BuildConfig) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// BuildSteps defines the fixed pipeline a builder drives for one extension:
// configure generates the native build files, build compiles, install
// populates the staged install prefix, and relocate copies the produced
// libraries into the package tree.
//
// Each phase runs to completion before the next starts; the first failing
// phase aborts the pipeline.
type BuildSteps struct {
	// ConfigureFunc prepares the build (e.g. the cmake configure run).
	ConfigureFunc func(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error

	// BuildFunc compiles the extension.
	BuildFunc func(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error

	// InstallFunc installs the compiled artifacts into the staging prefix.
	InstallFunc func(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error

	// RelocateFunc copies the staged libraries into the package layout and
	// returns their destination paths.
	RelocateFunc func(config *BuildConfig, ext *Extension, result *BuildResult) ([]string, error)
}
