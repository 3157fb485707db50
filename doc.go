// Package pyext provides native extension compilation support for Python
// packages built with CMake.
//
// This package is the Go equivalent of the setuptools CMake build_ext
// command: it drives an external CMake project through its configure,
// build and install phases, then relocates the produced shared libraries
// into the package's final module layout.
//
// # Basic Usage
//
// Construct an extension descriptor and build it:
//
//	ext, err := pyext.NewExtension(pyext.ExtensionConfig{
//	    Name:       "mypkg.libs.fastmod",
//	    CMakeLists: "native/CMakeLists.txt",
//	})
//	if err != nil {
//	    return err
//	}
//
//	config := &pyext.BuildConfig{
//	    BuildTemp:  "/tmp/build-fastmod",
//	    DestRoot:   "/path/to/site-packages",
//	    PythonPath: "/usr/bin/python3",
//	}
//
//	builder := &pyext.CmakeBuilder{}
//	result, err := builder.Build(ctx, config, ext)
//
// # Architecture
//
// The package uses a factory pattern with registered builders:
//
//	BuilderFactory
//	└── CmakeBuilder (CMakeLists.txt)
//
// Each builder implements the Builder interface and can:
//   - Detect if it can handle a given build file
//   - Build the extension with proper error handling
//   - Clean build artifacts
//
// CMake is the only build system Python extension projects hand us today;
// the factory keeps the door open for others (meson.build, setup.py shims)
// without changing callers.
//
// # Environment Overrides
//
// Two environment variables extend the CMake invocations:
//   - CMAKE_ARGS: extra flags for the configure phase
//   - CMAKE_BUILD_ARGS: extra flags for the build phase
//
// Both are split on single spaces, keeping the same tokenization the
// setuptools command uses.
//
// # Requirements
//
// Requires Go 1.25 or later and a cmake binary on PATH.
//
// # Platform Support
//
// Full support on Linux and macOS. Windows builds work when the configured
// CMake generator produces shared libraries named with a ".so" suffix,
// which is uncommon; native .dll relocation is not implemented.
package pyext
