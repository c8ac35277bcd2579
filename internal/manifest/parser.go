package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// Parse decodes manifest YAML and normalizes kinds to their canonical form.
// name is used in error messages only.
func Parse(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}

	if m.Version != "" {
		if _, err := semver.NewVersion(strings.TrimPrefix(m.Version, "v")); err != nil {
			return nil, fmt.Errorf("manifest %s: invalid version %q: %w", name, m.Version, err)
		}
	}

	for i := range m.Files {
		k, err := ParseKind(string(m.Files[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("manifest %s: files[%d] (%s): %w", name, i, m.Files[i].Source, err)
		}
		m.Files[i].Kind = k
	}

	for _, category := range m.Discover {
		if _, ok := DiscoverKind(category); !ok {
			return nil, fmt.Errorf("manifest %s: unknown discover category %q", name, category)
		}
	}

	return &m, nil
}

// ParseFS reads and parses the manifest at name within fsys.
func ParseFS(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", name, err)
	}
	return Parse(data, name)
}

// ParseFile reads and parses a manifest file from disk.
func ParseFile(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Load reads the manifest of the bundle rooted at dir within fsys, validates
// it against the schema, parses it, and expands its discover entries. The
// returned declarations are in final declaration order.
func Load(fsys fs.FS, dir string) (*Manifest, []FileDeclaration, error) {
	name := path.Join(dir, FileName)
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading manifest %s: %w", name, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, nil, fmt.Errorf("validating manifest %s: %w", name, err)
	}
	if !result.Valid {
		return nil, nil, &InvalidManifestError{Path: name, Issues: result.Issues}
	}

	m, err := Parse(data, name)
	if err != nil {
		return nil, nil, err
	}

	decls, err := Expand(fsys, dir, m)
	if err != nil {
		return nil, nil, err
	}
	return m, decls, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
