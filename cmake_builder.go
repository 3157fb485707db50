package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Environment variables consulted for extra CMake flags.
const (
	// EnvCMakeArgs extends the configure invocation.
	EnvCMakeArgs = "CMAKE_ARGS"
	// EnvCMakeBuildArgs extends the build invocation.
	EnvCMakeBuildArgs = "CMAKE_BUILD_ARGS"
)

// releaseDir is the staging install prefix under the build workspace.
const releaseDir = "release"

// CmakeBuilder drives CMake through configure, build and install for one
// extension, then relocates the produced shared libraries.
type CmakeBuilder struct{}

// Name returns the builder name
func (b *CmakeBuilder) Name() string {
	return "CMake"
}

// CanBuild checks if this builder can handle the build file
func (b *CmakeBuilder) CanBuild(buildFile string) bool {
	return MatchesPattern(buildFile, `CMakeLists\.txt$`)
}

// RequiredTools returns the tools needed for CMake builds
func (b *CmakeBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "cmake", Purpose: "CMake build system"},
		{Name: "ninja", Optional: true, Purpose: "Ninja build tool (faster than make)"},
	}
}

// CheckTools verifies that the CMake toolchain is available
func (b *CmakeBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Build runs the full pipeline for a single extension: tool check,
// workspace reset, configure, build, install, relocate.
//
// The workspace is discarded unconditionally before configuring; editable
// reinstalls have shown that stale CMake cache state from a previous run
// poisons the new one. A failing phase aborts the run and leaves the
// workspace in whatever state that phase produced.
func (b *CmakeBuilder) Build(ctx context.Context, config *BuildConfig, ext *Extension) (*BuildResult, error) {
	if err := b.CheckTools(); err != nil {
		err = fmt.Errorf("CMake must be installed to build the following extensions: %s: %w", ext.Name, err)
		return &BuildResult{
			Success:             false,
			Error:               err,
			MissingDependencies: []string{"cmake"},
		}, err
	}

	if err := b.resetWorkspace(config); err != nil {
		return &BuildResult{Success: false, Error: err}, err
	}

	return runBuildPipeline(ctx, config, ext, BuildSteps{
		ConfigureFunc: b.runConfigure,
		BuildFunc:     b.runCompile,
		InstallFunc:   b.runInstall,
		RelocateFunc:  moveLibs,
	})
}

// Clean removes build artifacts via the generated build system's clean
// target. Best effort: a missing workspace or failing clean target is not
// an error.
func (b *CmakeBuilder) Clean(ctx context.Context, config *BuildConfig, ext *Extension) error {
	cleanCmd := exec.CommandContext(ctx, "cmake", "--build", ".", "--target", "clean")
	cleanCmd.Dir = config.workspace()
	_ = cleanCmd.Run()
	return nil
}

// resetWorkspace discards any previous build state and recreates the
// workspace empty. Absence of the old workspace is tolerated.
func (b *CmakeBuilder) resetWorkspace(config *BuildConfig) error {
	workspace := config.workspace()
	if workspace == "" {
		return fmt.Errorf("build temp directory not configured")
	}

	if err := os.RemoveAll(workspace); err != nil {
		return fmt.Errorf("failed to reset build workspace %s: %w", workspace, err)
	}

	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("failed to create build workspace %s: %w", workspace, err)
	}

	return nil
}

// runConfigure executes the cmake configure step against the directory
// containing the extension's CMakeLists.txt.
func (b *CmakeBuilder) runConfigure(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error {
	sourceDir := filepath.Dir(ext.CMakeLists)
	if abs, err := filepath.Abs(sourceDir); err == nil {
		sourceDir = abs
	}

	args := []string{sourceDir}

	if ext.Toolchain != "" {
		args = append(args, "--toolchain", ext.Toolchain)
	}

	// Forward the interpreter so the native build links the matching runtime
	args = append(args, fmt.Sprintf("-DPYTHON_EXECUTABLE=%s", b.pythonPath(config)))
	args = append(args, fmt.Sprintf("-DCMAKE_INSTALL_PREFIX=%s", filepath.Join(config.workspace(), releaseDir)))
	args = append(args, SplitEnvArgs(os.Getenv(EnvCMakeArgs))...)

	return b.runCMake(ctx, config, result, "CMake", args)
}

// runCompile executes the build step with the extension's parallelism.
func (b *CmakeBuilder) runCompile(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error {
	args := []string{"--build", ".", fmt.Sprintf("-j%d", ext.Jobs)}
	args = append(args, SplitEnvArgs(os.Getenv(EnvCMakeBuildArgs))...)

	return b.runCMake(ctx, config, result, "CMake Build", args)
}

// runInstall executes the install step, populating the staging prefix.
func (b *CmakeBuilder) runInstall(ctx context.Context, config *BuildConfig, ext *Extension, result *BuildResult) error {
	return b.runCMake(ctx, config, result, "CMake Install", []string{"--install", "."})
}

// runCMake invokes cmake with the given arguments inside the build
// workspace, capturing combined output into the result.
func (b *CmakeBuilder) runCMake(ctx context.Context, config *BuildConfig, result *BuildResult, phase string, args []string) error {
	cmd := exec.CommandContext(ctx, "cmake", args...)
	cmd.Dir = config.workspace()

	cmd.Env = os.Environ()
	for key, value := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	output, err := cmd.CombinedOutput()
	result.Output = append(result.Output, strings.Split(string(output), "\n")...)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: cmake %s", strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", cmd.Dir))
	}

	if err != nil {
		return BuildError(phase, result.Output, err)
	}

	return nil
}

// pythonPath resolves the interpreter forwarded to CMake.
func (b *CmakeBuilder) pythonPath(config *BuildConfig) string {
	if config.PythonPath != "" {
		return config.PythonPath
	}

	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}

	return "python3"
}
