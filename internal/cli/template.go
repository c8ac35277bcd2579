package cli

import (
	"fmt"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	templateCmd.AddCommand(templateInstallCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage user templates",
	Long:  `Install and remove template bundles in ~/.kickstart/templates/.`,
}

var templateInstallCmd = &cobra.Command{
	Use:   "install <dir>",
	Short: "Install a template bundle from a directory",
	Long: `Validate the bundle at <dir> and copy it to ~/.kickstart/templates/<name>/, where
<name> is the manifest name. An existing bundle of the same name is replaced.
User templates shadow built-in templates of the same name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := registry.Install(args[0], config.TemplatesDir())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", dst)
		return nil
	},
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed template bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registry.Remove(args[0], config.TemplatesDir()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}
