package pyext

import (
	"fmt"
	"runtime"
	"strings"
)

// DefaultLibSubdir is where CMake install steps conventionally place shared
// libraries under the install prefix.
const DefaultLibSubdir = "lib"

// ExtensionConfig carries the caller-supplied fields for NewExtension.
//
// Only Name and CMakeLists are required. Zero values elsewhere select the
// documented defaults.
type ExtensionConfig struct {
	// Name is the full dotted module path of the extension
	// (e.g. "mypkg.libs.fastmod").
	Name string

	// CMakeLists is the path to the project's CMakeLists.txt file.
	CMakeLists string

	// Toolchain is an optional path to a CMake toolchain file for
	// cross-compilation.
	Toolchain string

	// LibSubdir is the directory under the install prefix where the
	// project installs its libraries. Defaults to "lib".
	LibSubdir string

	// Jobs is the build parallelism. Values <= 0 select AutoJobs().
	Jobs int

	// Include, when set, is consulted with each candidate library name;
	// names it rejects are skipped during relocation.
	Include func(name string) bool

	// Exclude, when set, is consulted after Include passes; names it
	// accepts are skipped during relocation.
	Exclude func(name string) bool
}

// Extension describes one CMake-built Python extension.
//
// Construct it with NewExtension so the CMakeLists path is validated and
// the job count defaulted; treat it as immutable afterwards. A single
// Extension is consumed by exactly one Build call.
type Extension struct {
	Name       string
	CMakeLists string
	Toolchain  string
	LibSubdir  string
	Jobs       int
	Include    func(name string) bool
	Exclude    func(name string) bool
}

// NewExtension validates the configuration and returns an immutable
// extension descriptor.
//
// The CMakeLists path must reference a CMakeLists.txt file; anything else
// is a configuration error reported here, never deferred to build time.
func NewExtension(cfg ExtensionConfig) (*Extension, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("extension name must not be empty")
	}

	if !strings.Contains(cfg.CMakeLists, "CMakeLists.txt") {
		return nil, fmt.Errorf("extension %s: cmakelists must be a path to a CMakeLists.txt file, got %q", cfg.Name, cfg.CMakeLists)
	}

	libSubdir := cfg.LibSubdir
	if libSubdir == "" {
		libSubdir = DefaultLibSubdir
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = AutoJobs()
	}

	return &Extension{
		Name:       cfg.Name,
		CMakeLists: cfg.CMakeLists,
		Toolchain:  cfg.Toolchain,
		LibSubdir:  libSubdir,
		Jobs:       jobs,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
	}, nil
}

// AutoJobs determines the default build parallelism for this machine.
//
// Returns half the CPU count, clamped to [1, 8]. Half because the compile
// jobs CMake spawns are commonly paired with a link step, and capped so a
// large CI machine does not starve co-tenant builds.
func AutoJobs() int {
	return autoJobsFor(runtime.NumCPU())
}

func autoJobsFor(cpus int) int {
	jobs := cpus / 2
	if jobs > 8 {
		jobs = 8
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
