package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// excludedNames are never picked up by discover.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// Expand returns the manifest's explicit declarations followed by one
// declaration per file discovered under <dir>/<category>/ for each entry in
// m.Discover. Categories are processed in manifest order and files in
// lexical walk order, so the result is deterministic. Each discovered
// declaration records its path below the category in Subpath. Missing
// category directories contribute nothing.
func Expand(fsys fs.FS, dir string, m *Manifest) ([]FileDeclaration, error) {
	decls := make([]FileDeclaration, 0, len(m.Files))
	decls = append(decls, m.Files...)

	for _, category := range m.Discover {
		kind, ok := DiscoverKind(category)
		if !ok {
			return nil, fmt.Errorf("unknown discover category %q", category)
		}

		root := path.Join(dir, category)
		err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if excludedNames[d.Name()] {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() || p == root {
				return nil
			}

			rel := p
			if dir != "" && dir != "." {
				rel = p[len(path.Clean(dir))+1:]
			}
			decls = append(decls, FileDeclaration{
				Source:  rel,
				Kind:    kind,
				Subpath: p[len(root)+1:],
			})
			return nil
		})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("discovering %s in %s: %w", category, dir, err)
		}
	}

	return decls, nil
}
