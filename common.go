package pyext

import "context"

// runBuildPipeline executes the standard 4-step build process.
//
// CMake-driven extension builds always follow the same pattern:
//
//  1. Configure: generate the native build files in the workspace
//  2. Build: compile the extension
//  3. Install: populate the staged install prefix
//  4. Relocate: copy the produced libraries into the package layout
//
// This function provides a consistent way to execute this pattern, allowing
// builders to focus on implementing their specific logic for each step.
//
// If any step fails, processing stops: result.Error is set, Success remains
// false, and the BuildResult is returned together with the error. Subsequent
// steps are not executed, so a failing build phase never issues the install
// invocation.
//
// The BuildResult.Output field is populated by the step functions as they
// execute.
func runBuildPipeline(ctx context.Context, config *BuildConfig, ext *Extension, steps BuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	if err := steps.ConfigureFunc(ctx, config, ext, result); err != nil {
		result.Error = err
		return result, err
	}

	if err := steps.BuildFunc(ctx, config, ext, result); err != nil {
		result.Error = err
		return result, err
	}

	if err := steps.InstallFunc(ctx, config, ext, result); err != nil {
		result.Error = err
		return result, err
	}

	artifacts, err := steps.RelocateFunc(config, ext, result)
	if err != nil {
		result.Error = err
		return result, err
	}

	result.Artifacts = artifacts
	result.Success = true
	return result, nil
}
