// Package registry finds template bundles across an ordered list of sources.
// A bundle is a top-level directory of a source that contains manifest.yaml.
// Sources are searched in slice order and the first match wins, so user
// directories shadow the built-in templates.
package registry
