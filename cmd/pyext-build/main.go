// Command pyext-build builds the first CMake extension declared in a
// pyext.toml manifest and installs its libraries into the destination
// package tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		manifestPath string
		destRoot     string
		buildTemp    string
		pythonPath   string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "pyext-build",
		Short: "Build a CMake-based Python extension",
		Long: `Build a CMake-based Python extension and install its shared libraries
into the destination package layout.

Extensions are declared in a TOML manifest:

  [[extension]]
  name = "mypkg.libs.fastmod"
  cmakelists = "native/CMakeLists.txt"

One extension is built per invocation; additional manifest entries are
reported and skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, manifestPath, destRoot, buildTemp, pythonPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "pyext.toml", "path to the extension manifest")
	cmd.Flags().StringVarP(&destRoot, "dest", "d", "", "root of the destination package layout (required)")
	cmd.Flags().StringVarP(&buildTemp, "build-temp", "t", "", "scratch build workspace (default: under the system temp dir)")
	cmd.Flags().StringVarP(&pythonPath, "python", "p", "", "python interpreter forwarded to CMake (default: python3 from PATH)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "record cmake command lines in the build output")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

func runBuild(cmd *cobra.Command, manifestPath, destRoot, buildTemp, pythonPath string, verbose bool) error {
	logger := log.Default()
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	manifest, err := pyext.LoadManifest(manifestPath)
	if err != nil {
		logger.Error("failed to load manifest", "path", manifestPath, "err", err)
		return err
	}

	ext := manifest.Extensions[0]
	if skipped := len(manifest.Extensions) - 1; skipped > 0 {
		logger.Warn("one extension is built per invocation", "building", ext.Name, "skipped", skipped)
	}

	if buildTemp == "" {
		buildTemp = filepath.Join(os.TempDir(), "pyext-build")
	}

	factory := pyext.NewBuilderFactory()
	builder, err := factory.BuilderFor(ext.CMakeLists)
	if err != nil {
		logger.Error("no builder for extension", "name", ext.Name, "err", err)
		return err
	}

	config := &pyext.BuildConfig{
		BuildTemp:  buildTemp,
		DestRoot:   destRoot,
		PythonPath: pythonPath,
		Verbose:    verbose,
		Logger:     logger,
	}

	logger.Info("building extension", "name", ext.Name, "builder", builder.Name(), "jobs", ext.Jobs)

	result, err := builder.Build(cmd.Context(), config, ext)
	if err != nil {
		if result != nil && verbose {
			for _, line := range result.Output {
				fmt.Fprintln(os.Stderr, line)
			}
		}
		logger.Error("build failed", "name", ext.Name, "err", err)
		return err
	}

	logger.Info("extension built", "name", ext.Name, "artifacts", len(result.Artifacts))
	for _, artifact := range result.Artifacts {
		logger.Debug("installed artifact", "path", artifact)
	}

	return nil
}
