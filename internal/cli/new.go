package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rwdkit/kickstart/internal/branding"
	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/plan"
	"github.com/rwdkit/kickstart/internal/scaffold"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultTemplate is the bundle used when --template is not given.
const defaultTemplate = "project"

var (
	newTemplate string
	newTargets  []string
	newDryRun   bool
	newForce    bool
	newJSON     bool
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a project from a template",
	Long: `Create a project directory from a template bundle. Declarations whose condition
does not match the target environment are skipped.

Examples:
  ` + branding.CLIName() + ` new my-site
  ` + branding.CLIName() + ` new my-site --template susy-respond-to --target IE=7
  ` + branding.CLIName() + ` new my-site --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", defaultTemplate, "Template bundle to use")
	newCmd.Flags().StringArrayVar(&newTargets, "target", nil, "Target legacy engine as ENGINE=VERSION, or \"modern\" (repeatable)")
	newCmd.Flags().BoolVar(&newDryRun, "dry-run", false, "Print the plan without writing files")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Write into a non-empty directory, overwriting files")
	newCmd.Flags().BoolVar(&newJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	outDir := args[0]

	s, err := config.Current()
	if err != nil {
		return err
	}
	env, err := targetEnvironment(s, newTargets)
	if err != nil {
		return err
	}
	lb, err := loadBundle(newTemplate, s)
	if err != nil {
		return err
	}

	p, err := newBuilder(s).Build(lb.decls, env)
	if err != nil {
		return fmt.Errorf("planning %s: %w", lb.bundle.Name, err)
	}

	out := cmd.OutOrStdout()
	if newDryRun {
		if newJSON {
			return printJSON(out, p)
		}
		plan.PrintPlan(out, lb.bundle.Name, p)
		return nil
	}

	result, err := scaffold.Execute(cmd.Context(), p, lb.bundle.FS, lb.bundle.Dir, outDir, scaffold.Options{
		Force:  newForce,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("project created",
		zap.String("run_id", result.RunID),
		zap.String("template", lb.bundle.Name),
		zap.String("source", lb.bundle.SourceName))

	if newJSON {
		return printJSON(out, result)
	}

	printResult(out, lb.bundle.Name, result, p)

	welcome, err := scaffold.RenderWelcome(lb.man.WelcomeMessage, scaffold.WelcomeData{
		ProjectName: filepath.Base(result.OutputDir),
		OutputDir:   result.OutputDir,
		Description: lb.man.Description,
		Files:       result.Files,
		Target:      p.Target,
	})
	if err != nil {
		return fmt.Errorf("rendering welcome message of %s: %w", lb.bundle.Name, err)
	}
	if welcome != "" {
		fmt.Fprintln(out)
		printBanner(out, welcome)
	}
	return nil
}

func printResult(w io.Writer, templateName string, result *scaffold.Result, p *plan.Plan) {
	fmt.Fprintf(w, "Created %s project at %s/ (target %s)\n", templateName, result.OutputDir, p.Target)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(p.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d file(s) not needed for this target.\n", len(p.Skipped))
	}
	fmt.Fprintln(w)
	plan.PrintSummary(w, p)
}
