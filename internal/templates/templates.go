// Package templates embeds the built-in template bundles. Each top-level
// directory holding a manifest.yaml is a bundle; shared/ holds assets that
// bundles reference with "../shared/...".
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:builtin
var builtinFS embed.FS

// FS returns the built-in templates rooted at the bundle directories.
func FS() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails for an invalid directory name.
		panic(err)
	}
	return sub
}
