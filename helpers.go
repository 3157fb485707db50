package pyext

import (
	"fmt"
	"regexp"
	"strings"
)

// sharedLibPattern matches shared library filenames: a base name, the .so
// suffix, and an optional dotted numeric version ("libfoo.so",
// "libfoo.so.1.2"). Tighter than the setuptools "*.so*" glob on purpose so
// "libfoo.sort" is not treated as a library.
var sharedLibPattern = regexp.MustCompile(`\.so(\.\d+)*$`)

// MatchesPattern checks if a filename matches any of the given regex patterns.
//
// This is a helper for builder implementations to determine if they can
// handle a given build file based on filename patterns. Invalid patterns
// are silently skipped.
//
//	if MatchesPattern(filename, `CMakeLists\.txt$`) {
//	    // Handle CMakeLists.txt
//	}
func MatchesPattern(filename string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, filename); matched {
			return true
		}
	}
	return false
}

// IsSharedLibrary reports whether the filename names a shared library,
// including versioned names like "libfoo.so.1.2".
func IsSharedLibrary(filename string) bool {
	return sharedLibPattern.MatchString(filename)
}

// SplitEnvArgs tokenizes an environment override string (CMAKE_ARGS,
// CMAKE_BUILD_ARGS) into extra command-line flags.
//
// The string is split on single spaces, with one trailing empty token
// removed, matching the setuptools tokenization: an empty variable yields
// no flags, and a trailing space does not introduce an empty flag. Interior
// runs of spaces still produce empty tokens, exactly as the original does.
func SplitEnvArgs(value string) []string {
	if value == "" {
		return nil
	}

	args := strings.Split(value, " ")
	if args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}
	return args
}

// BuildError creates a standardized build error with output context.
//
// This helper formats build errors consistently across all phases,
// including the captured tool output for debugging:
//
//	CMake Build build failed: exit status 2
//
//	Build output:
//	... output lines ...
func BuildError(phase string, output []string, err error) error {
	outputStr := strings.Join(output, "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s build failed: %v", phase, err)
	} else {
		prefix = fmt.Sprintf("%s build failed", phase)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}
