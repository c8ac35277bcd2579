package cli

import (
	"fmt"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/textfn"
	"github.com/spf13/cobra"
)

var fnStrict bool

var fnCmd = &cobra.Command{
	Use:   "fn [name] [args...]",
	Short: "Call a stylesheet text function",
	Long: `Call one of the text functions exposed to stylesheets and print the result.
With no arguments, list the available function names.

Examples:
  kickstart fn stringReplace n "" 3n+1
  kickstart fn extractLeadingInteger 2n+1`,
	RunE: runFn,
}

func init() {
	fnCmd.Flags().BoolVar(&fnStrict, "strict", false, "Warn when a numeric coercion discards input")
	// Function arguments such as "-2n+3" must not be parsed as flags.
	fnCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(fnCmd)
}

func runFn(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}
	strict := s.Functions.Strict
	if cmd.Flags().Changed("strict") {
		strict = fnStrict
	}
	lib := textfn.New(textfn.WithStrict(strict), textfn.WithLogger(logger))

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range lib.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	fn, err := lib.Lookup(args[0])
	if err != nil {
		return err
	}
	result, err := fn(args[1:]...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)

	for _, w := range lib.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return nil
}
