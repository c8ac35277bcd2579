package registry

import "io/fs"

// Source is a location to search for template bundles.
type Source struct {
	Name string // e.g., "builtin", "user", or a configured path
	FS   fs.FS
	Dir  string // on-disk root of FS; empty for embedded sources
}

// Bundle is a template bundle resolved from a source.
type Bundle struct {
	Name       string // directory name, e.g., "project"
	SourceName string // name of the source it was found in
	FS         fs.FS  // source filesystem; sources may reach sibling dirs with ".."
	Dir        string // bundle directory within FS
	BaseDir    string // on-disk source root, empty for embedded sources
}

// DiscoveredBundle is a bundle enriched with manifest metadata.
type DiscoveredBundle struct {
	Name        string
	Version     string
	Description string
	Source      string
	Invalid     string // parse error, empty when the manifest is readable
}
