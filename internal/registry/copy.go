package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwdkit/kickstart/internal/manifest"
)

// ErrNotSelfContained is returned by Install when a bundle declares sources
// outside its own directory or sources that do not exist.
var ErrNotSelfContained = errors.New("bundle is not self-contained")

// excludedNames are skipped when installing a bundle.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
	"Thumbs.db":    true,
}

// Install copies the bundle at srcDir into userDir under its manifest name
// and returns the installed directory. The manifest must validate and every
// declared source must live inside srcDir, since shared assets reached with
// ".." are not carried along.
//
// The copy is staged in a temporary directory next to the destination and
// swapped in only once complete, so an existing installation of the same
// name survives a failed install. Reinstalling a bundle from its installed
// location is allowed.
func Install(srcDir, userDir string) (string, error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", srcDir, err)
	}
	absUser, err := filepath.Abs(userDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", userDir, err)
	}

	src := os.DirFS(absSrc)
	m, decls, err := manifest.Load(src, ".")
	if err != nil {
		return "", fmt.Errorf("loading bundle %s: %w", srcDir, err)
	}
	if !validName(m.Name) {
		return "", fmt.Errorf("bundle %s: invalid template name %q", srcDir, m.Name)
	}
	if err := checkSelfContained(src, decls); err != nil {
		return "", fmt.Errorf("bundle %s: %w", srcDir, err)
	}
	if within(absUser, absSrc) {
		return "", fmt.Errorf("bundle %s contains the template directory %s", srcDir, userDir)
	}

	if err := os.MkdirAll(absUser, 0755); err != nil {
		return "", fmt.Errorf("creating template directory %s: %w", userDir, err)
	}
	staging, err := os.MkdirTemp(absUser, "."+m.Name+"-install-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := copyTree(src, staging); err != nil {
		return "", fmt.Errorf("copying %s: %w", srcDir, err)
	}

	dst := filepath.Join(absUser, m.Name)
	if err := os.RemoveAll(dst); err != nil {
		return "", fmt.Errorf("removing existing installation at %s: %w", dst, err)
	}
	if err := os.Rename(staging, dst); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", dst, err)
	}

	return dst, nil
}

// within reports whether path is root or lies below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Remove deletes an installed bundle from userDir.
func Remove(name, userDir string) error {
	if !validName(name) {
		return fmt.Errorf("invalid template name %q", name)
	}
	dir := filepath.Join(userDir, name)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("template %s is not installed: %w", name, ErrTemplateNotFound)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}

	return nil
}

func checkSelfContained(fsys fs.FS, decls []manifest.FileDeclaration) error {
	for i, decl := range decls {
		if !fs.ValidPath(decl.Source) {
			return fmt.Errorf("%w: source %q of declaration #%d is outside the bundle", ErrNotSelfContained, decl.Source, i)
		}
		if _, err := fs.Stat(fsys, decl.Source); err != nil {
			return fmt.Errorf("%w: source %q of declaration #%d: %v", ErrNotSelfContained, decl.Source, i, err)
		}
	}
	return nil
}

// copyTree copies every regular file of fsys into dst, skipping
// excludedNames. Symlinks and other special files are ignored.
func copyTree(fsys fs.FS, dst string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && shouldExclude(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type().IsRegular():
			return copyFile(fsys, p, target)
		default:
			return nil
		}
	})
}

// copyFile copies a single file, keeping its permission bits.
func copyFile(fsys fs.FS, name, dst string) error {
	in, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func shouldExclude(name string) bool {
	return excludedNames[name]
}
