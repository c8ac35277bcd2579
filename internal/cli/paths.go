package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rwdkit/kickstart/internal/branding"
	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/host"
	"github.com/rwdkit/kickstart/internal/textfn"
	"github.com/spf13/cobra"
)

var (
	pathsMode string
	pathsJSON bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths [dir...]",
	Short: "Print stylesheet search-path registration",
	Long: `Register base directories with the stylesheet compiler and print the result.

In framework mode the single base directory is registered under the framework
name. In load-path mode <dir>/stylesheets is appended to the load path for each
dir, printed as a ` + host.LoadPathVar + ` assignment for the shell. With no dir, the
per-user template directory is used.`,
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&pathsMode, "mode", "", "Registration mode: framework or load-path (default from config)")
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(pathsCmd)
}

// pathsOutput is the JSON form of a registration result.
type pathsOutput struct {
	Mode       host.Mode         `json:"mode"`
	Frameworks map[string]string `json:"frameworks,omitempty"`
	LoadPaths  []string          `json:"load_paths,omitempty"`
	Functions  []string          `json:"functions"`
}

func runPaths(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	modeName := s.Registration.Mode
	if pathsMode != "" {
		modeName = pathsMode
	}
	mode, err := host.ParseMode(modeName)
	if err != nil {
		return err
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{config.TemplatesDir()}
	}
	if mode == host.ModeFramework && len(dirs) > 1 {
		return fmt.Errorf("framework mode registers a single base directory, got %d", len(dirs))
	}

	env := host.NewEnvironment(textfn.New(
		textfn.WithStrict(s.Functions.Strict),
		textfn.WithLogger(logger)))
	registrar, err := host.NewRegistrar(mode, branding.FrameworkName(), env)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}
		if err := registrar.RegisterSearchPath(abs); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if pathsJSON {
		o := pathsOutput{
			Mode:      mode,
			LoadPaths: env.LoadPaths(),
			Functions: env.Functions.Names(),
		}
		for _, name := range env.Frameworks() {
			if o.Frameworks == nil {
				o.Frameworks = make(map[string]string)
			}
			o.Frameworks[name], _ = env.Framework(name)
		}
		return printJSON(out, o)
	}

	switch mode {
	case host.ModeFramework:
		for _, name := range env.Frameworks() {
			dir, _ := env.Framework(name)
			fmt.Fprintf(out, "%s: %s\n", name, dir)
		}
	case host.ModeLoadPath:
		fmt.Fprintf(out, "%s=%s\n", host.LoadPathVar, env.LoadPathValue())
	}
	return nil
}
