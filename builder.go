package pyext

import "context"

// Builder defines the interface that all extension builders must implement.
//
// Each builder is responsible for a specific build system and must
// implement these four methods to integrate with the BuilderFactory.
//
// # Builder Lifecycle
//
//  1. CanBuild() - Factory calls this to find the right builder for a build file
//  2. Build() - Caller invokes this to compile one extension
//  3. Clean() - Optional cleanup of build artifacts
//
// # Thread Safety
//
// Builder implementations should be stateless. Builds themselves are not
// concurrent-safe per BuildConfig: a build owns its BuildTemp workspace
// exclusively for the duration of the run.
type Builder interface {
	// Name returns the human-readable name of this builder, used in
	// error messages and logs (e.g. "CMake").
	Name() string

	// CanBuild checks if this builder can handle the given build file.
	// The argument is typically just the filename ("CMakeLists.txt") or
	// a relative path ("native/CMakeLists.txt").
	CanBuild(buildFile string) bool

	// Build compiles exactly one extension and relocates its artifacts.
	//
	// Returns:
	//   - BuildResult with Success=true and Artifacts list on success
	//   - BuildResult with Success=false and Error on failure
	//
	// Building several extensions in one invocation is deliberately not
	// provided; callers loop if they need it.
	Build(ctx context.Context, config *BuildConfig, ext *Extension) (*BuildResult, error)

	// Clean removes build artifacts. Best effort; returns nil if cleaning
	// is not supported or completes successfully.
	Clean(ctx context.Context, config *BuildConfig, ext *Extension) error
}
