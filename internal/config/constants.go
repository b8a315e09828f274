// Package config holds the fixed vocabulary the rest of the module treats
// as given constants: the release version, entry-point names, and the
// recognized shader source extensions. config.go adds the CLI's runtime
// configuration.
package config

// Version is the module's release version, bumped manually per release.
var Version = "0.1.0"

// SourceFileExt is the canonical extension for shader source files.
const SourceFileExt = ".shd"

// SourceFileExtensions lists every extension the CLI will pick up when
// walking a directory.
var SourceFileExtensions = []string{".shd", ".shader"}

// EntryPointNames are the two recognized shader stage entry functions.
const (
	VertexEntryPoint = "vertex"
	PixelEntryPoint  = "pixel"
)

// HasSourceExt reports whether name ends in a recognized shader extension.
func HasSourceExt(name string) bool {
	for _, ext := range SourceFileExtensions {
		if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt strips a recognized shader extension from name, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
