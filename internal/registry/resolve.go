package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/rwdkit/kickstart/internal/manifest"
)

// ErrTemplateNotFound is returned when no source provides a bundle.
var ErrTemplateNotFound = errors.New("template not found")

// Source names used by DefaultSources.
const (
	SourceBuiltin = "builtin"
	SourceUser    = "user"
)

// DirSource returns a Source backed by the directory dir.
func DirSource(name, dir string) Source {
	return Source{Name: name, FS: os.DirFS(dir), Dir: dir}
}

// DefaultSources returns the standard search order: each configured path,
// then the per-user template directory, then the built-in templates.
// Empty paths are skipped; a nil builtin is omitted.
func DefaultSources(paths []string, userDir string, builtin fs.FS) []Source {
	var sources []Source
	for _, p := range paths {
		if p == "" {
			continue
		}
		sources = append(sources, DirSource(p, p))
	}
	if userDir != "" {
		sources = append(sources, DirSource(SourceUser, userDir))
	}
	if builtin != nil {
		sources = append(sources, Source{Name: SourceBuiltin, FS: builtin})
	}
	return sources
}

// Resolve searches for the bundle name across sources in priority order and
// returns the first match.
func Resolve(name string, sources []Source) (*Bundle, error) {
	if !validName(name) {
		return nil, fmt.Errorf("invalid template name %q", name)
	}

	for _, src := range sources {
		if src.FS == nil {
			continue
		}
		if !hasManifest(src.FS, name) {
			continue // not found in this source
		}
		return &Bundle{
			Name:       name,
			SourceName: src.Name,
			FS:         src.FS,
			Dir:        name,
			BaseDir:    src.Dir,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// hasManifest reports whether dir within fsys holds a manifest file.
func hasManifest(fsys fs.FS, dir string) bool {
	info, err := fs.Stat(fsys, path.Join(dir, manifest.FileName))
	return err == nil && !info.IsDir()
}

// validName reports whether name is a single, clean path segment.
func validName(name string) bool {
	return name != "" && name != "." && fs.ValidPath(name) && !strings.Contains(name, "/")
}
