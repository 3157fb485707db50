package pyext

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

// ToolChecker is an optional interface for builders that require external
// tools.
//
// Builders can implement this interface to declare their tool dependencies
// and verify that required tools are available before attempting to build.
// Checking up front keeps the failure before any workspace mutation, so a
// missing tool never leaves a half-reset build directory behind.
//
// Consumer usage:
//
//	if checker, ok := builder.(ToolChecker); ok {
//	    if err := checker.CheckTools(); err != nil {
//	        return fmt.Errorf("build tools missing: %w", err)
//	    }
//	}
type ToolChecker interface {
	// RequiredTools returns the list of tools this builder needs.
	RequiredTools() []ToolRequirement

	// CheckTools verifies that all required tools are available.
	// Optional tools don't cause errors if missing.
	CheckTools() error
}

// ToolRequirement describes a build tool dependency.
//
// A requirement is satisfied when its primary tool or any of its
// Alternatives responds to a version query. Optional requirements are
// probed but never fail the check.
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cmake").
	Name string

	// Alternatives are alternative tool names that can satisfy this
	// requirement (e.g., []string{"cmake3"}).
	Alternatives []string

	// Optional indicates this tool won't cause an error if missing.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// CheckToolAvailable checks if a tool is invocable by running its version
// query.
//
// Probing with --version rather than a bare PATH lookup also catches
// binaries that exist but cannot execute on this host (wrong architecture,
// broken interpreter line).
func CheckToolAvailable(tool string) error {
	if _, err := sh.Output(tool, "--version"); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies all required tools are available.
//
// The primary tool name is probed first, then each alternative in order.
// Returns nil if every required tool is available, or a single error
// listing all missing required tools:
//
//	cmake (CMake build system) not found in PATH
//	missing required tools: cmake (CMake build system), ninja
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil

		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missingTools = append(missingTools, req.Name)
			}
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}
