// Package layout computes project-relative destination paths for manifest
// declarations. Resolution is pure string manipulation: it never touches
// the filesystem.
package layout

import (
	"fmt"
	"path"
	"strings"

	"github.com/rwdkit/kickstart/internal/manifest"
)

// Layout holds the directory conventions used to place declarations that
// do not name an explicit destination.
type Layout struct {
	StylesheetsDir string `mapstructure:"stylesheets_dir" json:"stylesheets_dir"`
	JavascriptsDir string `mapstructure:"javascripts_dir" json:"javascripts_dir"`
	ImagesDir      string `mapstructure:"images_dir" json:"images_dir"`
}

// Default directory names.
const (
	DefaultStylesheetsDir = "stylesheets"
	DefaultJavascriptsDir = "javascripts"
	DefaultImagesDir      = "images"
)

// Default returns the conventional layout.
func Default() Layout {
	return Layout{
		StylesheetsDir: DefaultStylesheetsDir,
		JavascriptsDir: DefaultJavascriptsDir,
		ImagesDir:      DefaultImagesDir,
	}
}

// InvalidDestinationError reports a destination that escapes the project
// root or is otherwise unsafe.
type InvalidDestinationError struct {
	Destination string
	Reason      string
}

func (e *InvalidDestinationError) Error() string {
	return fmt.Sprintf("invalid destination %q: %s", e.Destination, e.Reason)
}

// Dir returns the directory files of kind are placed in. Generic files go
// to the project root, reported as "".
func (l Layout) Dir(kind manifest.Kind) string {
	switch kind {
	case manifest.KindStylesheet:
		return l.StylesheetsDir
	case manifest.KindScript:
		return l.JavascriptsDir
	case manifest.KindImage:
		return l.ImagesDir
	default:
		return ""
	}
}

// Validate checks that every configured directory is a safe relative path.
func (l Layout) Validate() error {
	for _, dir := range []string{l.StylesheetsDir, l.JavascriptsDir, l.ImagesDir} {
		if dir == "" {
			continue
		}
		if _, err := Normalize(dir); err != nil {
			return fmt.Errorf("layout directory: %w", err)
		}
	}
	return nil
}

// Resolve returns the destination for decl. An explicit destination is
// normalized and checked; otherwise the destination is the layout
// directory for decl.Kind joined with decl.Subpath for discovered files,
// or with the base name of decl.Source.
func (l Layout) Resolve(decl manifest.FileDeclaration) (string, error) {
	if decl.Destination != "" {
		return Normalize(decl.Destination)
	}
	if decl.Subpath != "" {
		return Normalize(path.Join(l.Dir(decl.Kind), decl.Subpath))
	}

	base := path.Base(decl.Source)
	if decl.Source == "" || base == "." || base == ".." || base == "/" {
		return "", &InvalidDestinationError{
			Destination: decl.Source,
			Reason:      "cannot derive a file name from source",
		}
	}
	return Normalize(path.Join(l.Dir(decl.Kind), base))
}

// Resolve resolves decl with the default layout.
func Resolve(decl manifest.FileDeclaration) (string, error) {
	return Default().Resolve(decl)
}

// Normalize cleans a "/"-separated project-relative path and rejects paths
// that are absolute, carry a volume name or backslashes, point at the
// project root itself, or climb out of it.
func Normalize(dest string) (string, error) {
	switch {
	case strings.TrimSpace(dest) == "":
		return "", &InvalidDestinationError{Destination: dest, Reason: "empty path"}
	case strings.Contains(dest, `\`):
		return "", &InvalidDestinationError{Destination: dest, Reason: "backslash separators are not allowed"}
	case strings.HasPrefix(dest, "/"):
		return "", &InvalidDestinationError{Destination: dest, Reason: "must be relative to the project root"}
	case hasVolumeName(dest):
		return "", &InvalidDestinationError{Destination: dest, Reason: "must not name a drive"}
	}

	cleaned := path.Clean(dest)
	if cleaned == "." {
		return "", &InvalidDestinationError{Destination: dest, Reason: "resolves to the project root"}
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &InvalidDestinationError{Destination: dest, Reason: "escapes the project root"}
	}
	return cleaned, nil
}

func hasVolumeName(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
