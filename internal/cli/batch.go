package cli

import (
	"fmt"
	"os"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/plan"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var batchJSON bool

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Plan several template/target combinations at once",
	Long: `Read a YAML batch file and build one plan per run concurrently. Each run names a
template and its own target; runs share nothing.

Example file:
  runs:
    - name: legacy
      template: project
      target: [IE=7]
    - name: modern
      template: susy-respond-to
      target: [modern]`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(batchCmd)
}

// batchFile is the YAML batch document.
type batchFile struct {
	Runs []batchRun `yaml:"runs"`
}

type batchRun struct {
	Name     string   `yaml:"name"`
	Template string   `yaml:"template"`
	Target   []string `yaml:"target"`
}

// batchResult is the JSON form of one planned run.
type batchResult struct {
	Name     string     `json:"name"`
	Template string     `json:"template"`
	Plan     *plan.Plan `json:"plan"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return fmt.Errorf("parsing batch file %s: %w", args[0], err)
	}
	if len(bf.Runs) == 0 {
		return fmt.Errorf("batch file %s declares no runs", args[0])
	}

	s, err := config.Current()
	if err != nil {
		return err
	}

	loaded := make(map[string]*loadedBundle)
	runs := make([]plan.Run, 0, len(bf.Runs))
	for i, r := range bf.Runs {
		if r.Name == "" {
			r.Name = fmt.Sprintf("run-%d", i+1)
			bf.Runs[i].Name = r.Name
		}
		if r.Template == "" {
			r.Template = defaultTemplate
			bf.Runs[i].Template = r.Template
		}

		lb, ok := loaded[r.Template]
		if !ok {
			lb, err = loadBundle(r.Template, s)
			if err != nil {
				return fmt.Errorf("run %s: %w", r.Name, err)
			}
			loaded[r.Template] = lb
		}

		env, err := targetEnvironment(s, r.Target)
		if err != nil {
			return fmt.Errorf("run %s: %w", r.Name, err)
		}
		runs = append(runs, plan.Run{Name: r.Name, Declarations: lb.decls, Env: env})
	}

	plans, err := newBuilder(s).BuildAll(cmd.Context(), runs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if batchJSON {
		results := make([]batchResult, len(plans))
		for i, p := range plans {
			results[i] = batchResult{Name: bf.Runs[i].Name, Template: bf.Runs[i].Template, Plan: p}
		}
		return printJSON(out, results)
	}
	for i, p := range plans {
		plan.PrintPlan(out, fmt.Sprintf("%s (%s)", bf.Runs[i].Name, bf.Runs[i].Template), p)
	}
	return nil
}
