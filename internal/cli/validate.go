package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest|dir>",
	Short: "Check a template manifest",
	Long: `Validate a template manifest against the manifest schema, then check that every
condition parses, every destination stays inside the project, and every source
file exists. Conflicting destinations are reported by "plan" for a concrete target.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath, err := manifestPathFor(args[0])
	if err != nil {
		return err
	}

	result, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !result.Valid {
		fmt.Fprintf(out, "Invalid: %s\n", manifestPath)
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		return fmt.Errorf("manifest %s has %d issue(s)", manifestPath, len(result.Issues))
	}

	// Sources may reach sibling directories with "..", so the bundle is
	// opened from its parent.
	bundleDir := filepath.Dir(manifestPath)
	fsys := os.DirFS(filepath.Dir(bundleDir))
	dir := filepath.Base(bundleDir)

	_, decls, err := manifest.Load(fsys, dir)
	if err != nil {
		return err
	}

	s, err := config.Current()
	if err != nil {
		return err
	}
	if err := newBuilder(s).Lint(decls); err != nil {
		return err
	}

	var missing []error
	for i, d := range decls {
		src := path.Join(dir, d.Source)
		if !fs.ValidPath(src) {
			missing = append(missing, fmt.Errorf("declaration #%d (%s): source escapes %s", i, d.Source, filepath.Dir(bundleDir)))
			continue
		}
		if _, err := fs.Stat(fsys, src); err != nil {
			missing = append(missing, fmt.Errorf("declaration #%d (%s): source not found", i, d.Source))
		}
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	fmt.Fprintf(out, "Valid: %s (%d declarations)\n", manifestPath, len(decls))
	return nil
}

// manifestPathFor accepts a manifest file or a bundle directory and returns
// the absolute manifest path.
func manifestPathFor(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", arg, err)
	}
	if info.IsDir() {
		abs = filepath.Join(abs, manifest.FileName)
	}
	return abs, nil
}
