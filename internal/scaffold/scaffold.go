package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rwdkit/kickstart/internal/plan"
	"go.uber.org/zap"
)

var (
	// ErrOutputNotEmpty is returned when the output directory already holds files.
	ErrOutputNotEmpty = errors.New("output directory is not empty")

	// ErrPathTraversal is returned when a destination would escape the output directory.
	ErrPathTraversal = errors.New("path traversal detected")
)

// Options controls plan execution.
type Options struct {
	Force  bool        // write into a non-empty output directory, overwriting files
	Logger *zap.Logger // nil means no logging
}

// Result holds the outcome of a scaffold run.
type Result struct {
	RunID     string   `json:"run_id"`
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"` // destinations written, in plan order
}

// Execute copies every entry of p from bundleDir within fsys into outDir.
// Entry sources are resolved relative to bundleDir and may reach sibling
// directories of the source with "..". ctx is checked before each file.
func Execute(ctx context.Context, p *plan.Plan, fsys fs.FS, bundleDir, outDir string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	// Create output directory.
	if err := os.MkdirAll(absOut, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	if !opts.Force {
		existingEntries, err := os.ReadDir(absOut)
		if err == nil && len(existingEntries) > 0 {
			return nil, fmt.Errorf("%w: %s (use --force to write anyway)", ErrOutputNotEmpty, outDir)
		}
	}

	result := &Result{
		RunID:     uuid.NewString(),
		OutputDir: absOut,
		Files:     make([]string, 0, len(p.Entries)),
	}
	logger = logger.With(zap.String("run_id", result.RunID))
	logger.Info("scaffold started",
		zap.String("output", absOut),
		zap.Int("files", len(p.Entries)))

	for _, entry := range p.Entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scaffold cancelled: %w", err)
		}

		dst, err := destinationPath(absOut, entry.Destination)
		if err != nil {
			return nil, err
		}

		src := path.Join(bundleDir, entry.Source)
		if !fs.ValidPath(src) {
			return nil, fmt.Errorf("source %q of declaration #%d escapes the template source", entry.Source, entry.Index)
		}
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Source, err)
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", entry.Destination, err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.Destination, err)
		}

		result.Files = append(result.Files, entry.Destination)
		logger.Debug("file copied",
			zap.String("source", entry.Source),
			zap.String("destination", entry.Destination))
	}

	logger.Info("scaffold finished", zap.Int("files", len(result.Files)))
	return result, nil
}

// destinationPath returns the absolute path for the project-relative
// destination rel, rejecting anything that would land outside root.
func destinationPath(root, rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))

	if rel == "" || cleaned == "." {
		return "", fmt.Errorf("%w: empty destination", ErrPathTraversal)
	}
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" {
		return "", fmt.Errorf("%w: absolute path %q", ErrPathTraversal, rel)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, rel)
	}

	abs := filepath.Join(root, cleaned)
	back, err := filepath.Rel(root, abs)
	if err != nil || back == "." || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes output directory", ErrPathTraversal, rel)
	}
	return abs, nil
}
