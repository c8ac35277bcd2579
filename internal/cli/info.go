package cli

import (
	"fmt"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/scaffold"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <template>",
	Short: "Show a template's description and help",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}
	lb, err := loadBundle(args[0], s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:         %s\n", lb.man.Name)
	if lb.man.Version != "" {
		fmt.Fprintf(out, "Version:      %s\n", lb.man.Version)
	}
	if lb.man.Description != "" {
		fmt.Fprintf(out, "Description:  %s\n", lb.man.Description)
	}
	fmt.Fprintf(out, "Source:       %s\n", lb.bundle.SourceName)
	fmt.Fprintf(out, "Declarations: %d\n", len(lb.decls))

	help, err := scaffold.RenderHelp(lb.man.Help, scaffold.WelcomeData{Description: lb.man.Description})
	if err != nil {
		return fmt.Errorf("rendering help of %s: %w", lb.man.Name, err)
	}
	if help != "" {
		fmt.Fprintln(out)
		printBanner(out, help)
	}
	return nil
}
