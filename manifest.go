package pyext

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded form of a pyext.toml file describing the
// extensions a package ships.
type Manifest struct {
	Extensions []*Extension
}

type manifestFile struct {
	Extension []manifestEntry `toml:"extension"`
}

type manifestEntry struct {
	Name            string   `toml:"name"`
	CMakeLists      string   `toml:"cmakelists"`
	Toolchain       string   `toml:"toolchain"`
	LibSubdir       string   `toml:"lib_subdir"`
	Jobs            int      `toml:"jobs"`
	IncludePrefixes []string `toml:"include_prefixes"`
	ExcludePrefixes []string `toml:"exclude_prefixes"`
}

// LoadManifest reads a TOML manifest and validates every declared
// extension through NewExtension.
//
// Manifest format:
//
//	[[extension]]
//	name = "mypkg.libs.fastmod"
//	cmakelists = "native/CMakeLists.txt"
//	jobs = 4
//	include_prefixes = ["libfast"]
//	exclude_prefixes = ["libfast_test"]
//
// The prefix lists compile into Include/Exclude predicates matching
// library filenames by prefix; empty lists leave the predicate unset.
func LoadManifest(path string) (*Manifest, error) {
	var raw manifestFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load extension manifest: %w", err)
	}

	if len(raw.Extension) == 0 {
		return nil, fmt.Errorf("manifest %s declares no extensions", path)
	}

	manifest := &Manifest{}
	for _, entry := range raw.Extension {
		ext, err := NewExtension(ExtensionConfig{
			Name:       entry.Name,
			CMakeLists: entry.CMakeLists,
			Toolchain:  entry.Toolchain,
			LibSubdir:  entry.LibSubdir,
			Jobs:       entry.Jobs,
			Include:    prefixPredicate(entry.IncludePrefixes),
			Exclude:    prefixPredicate(entry.ExcludePrefixes),
		})
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		manifest.Extensions = append(manifest.Extensions, ext)
	}

	return manifest, nil
}

func prefixPredicate(prefixes []string) func(string) bool {
	if len(prefixes) == 0 {
		return nil
	}
	return func(name string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	}
}
