package pyext

import (
	"fmt"
	"path/filepath"
)

// BuilderFactory manages the registration and selection of extension
// builders.
//
// When selecting a builder for a build file, the factory extracts the base
// filename and returns the first registered builder whose CanBuild reports
// true.
//
// # Thread Safety
//
// BuilderFactory is NOT thread-safe for registration. Register all
// builders before concurrent use; after that, reads are safe.
type BuilderFactory struct {
	builders []Builder
}

// NewBuilderFactory creates a factory with all standard builders
// registered. Today that is the CMake builder only.
func NewBuilderFactory() *BuilderFactory {
	factory := &BuilderFactory{}
	factory.Register(&CmakeBuilder{})
	return factory
}

// Register adds a new builder to the factory.
//
// Builders are checked in the order they are registered; the first builder
// that can handle a file wins.
func (f *BuilderFactory) Register(builder Builder) {
	f.builders = append(f.builders, builder)
}

// BuilderFor returns the appropriate builder for the given build file.
//
// The buildFile can be a full path ("native/CMakeLists.txt") or just a
// filename; only the base filename is used for matching.
func (f *BuilderFactory) BuilderFor(buildFile string) (Builder, error) {
	filename := filepath.Base(buildFile)

	for _, builder := range f.builders {
		if builder.CanBuild(filename) {
			return builder, nil
		}
	}

	return nil, fmt.Errorf("no builder found for build file: %s", filename)
}

// ListBuilders returns a copy of all registered builders.
func (f *BuilderFactory) ListBuilders() []Builder {
	return append([]Builder{}, f.builders...)
}
