package registry

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rwdkit/kickstart/internal/manifest"
)

// Discover walks all sources and returns every bundle enriched with its
// manifest metadata, sorted by name. Bundles found in earlier sources take
// priority (later duplicates are skipped). Unreadable sources are skipped.
func Discover(sources []Source) ([]DiscoveredBundle, error) {
	seen := make(map[string]bool)
	var result []DiscoveredBundle

	for _, src := range sources {
		names, err := walkSource(src)
		if err != nil {
			continue // skip inaccessible sources
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			result = append(result, describe(src, name))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// walkSource lists the top-level bundle directories of a source. Hidden
// directories, such as an interrupted install's staging copy, are ignored.
func walkSource(src Source) ([]string, error) {
	if src.FS == nil {
		return nil, fs.ErrNotExist
	}
	entries, err := fs.ReadDir(src.FS, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || shouldExclude(entry.Name()) || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if hasManifest(src.FS, entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// describe reads the bundle manifest for listing purposes.
func describe(src Source, name string) DiscoveredBundle {
	db := DiscoveredBundle{Name: name, Source: src.Name}

	m, err := manifest.ParseFS(src.FS, path.Join(name, manifest.FileName))
	if err != nil {
		db.Invalid = err.Error()
		return db
	}
	db.Version = m.Version
	db.Description = m.Description
	return db
}
