package cli

import (
	"fmt"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/plan"
	"github.com/spf13/cobra"
)

var (
	planTargets []string
	planJSON    bool
)

var planCmd = &cobra.Command{
	Use:   "plan <template>",
	Short: "Show which files a template would copy for a target",
	Long: `Resolve a template's declarations against the target environment and print the
ordered copy plan without touching the filesystem.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&planTargets, "target", nil, "Target legacy engine as ENGINE=VERSION, or \"modern\" (repeatable)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}
	env, err := targetEnvironment(s, planTargets)
	if err != nil {
		return err
	}
	lb, err := loadBundle(args[0], s)
	if err != nil {
		return err
	}

	p, err := newBuilder(s).Build(lb.decls, env)
	if err != nil {
		return fmt.Errorf("planning %s: %w", lb.bundle.Name, err)
	}

	if planJSON {
		return printJSON(cmd.OutOrStdout(), p)
	}
	plan.PrintPlan(cmd.OutOrStdout(), lb.bundle.Name, p)
	return nil
}
