package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rwdkit/kickstart/internal/condition"
	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/host"
	"github.com/rwdkit/kickstart/internal/layout"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write kickstart configuration stored at ~/.kickstart/config.yaml.
Every key can also be set from the environment, e.g. KICKSTART_TARGET_IE=7.

Keys:
  ` + config.KeyTargetIE + `              default legacy IE version (empty for modern)
  ` + config.KeyRegistrationMode + `      framework or load-path
  ` + config.KeyFunctionsStrict + `       warn on lossy numeric coercion
  ` + config.KeyStylesheetsDir + ` stylesheet directory
  ` + config.KeyJavascriptsDir + ` script directory
  ` + config.KeyImagesDir + `      image directory
  ` + config.KeyTemplatePaths + `        extra template directories, comma-separated`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := checkConfigValue(key, value); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		values := map[string]string{
			config.KeyTargetIE:         s.Target.IE,
			config.KeyRegistrationMode: s.Registration.Mode,
			config.KeyFunctionsStrict:  strconv.FormatBool(s.Functions.Strict),
			config.KeyStylesheetsDir:   s.Layout.StylesheetsDir,
			config.KeyJavascriptsDir:   s.Layout.JavascriptsDir,
			config.KeyImagesDir:        s.Layout.ImagesDir,
			config.KeyTemplatePaths:    strings.Join(s.Templates.Paths, ","),
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tENV")
		for _, key := range config.Keys() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, values[key], config.EnvName(key))
		}
		return w.Flush()
	},
}

// checkConfigValue rejects values that would only fail later, at scaffold time.
func checkConfigValue(key, value string) error {
	var err error
	switch key {
	case config.KeyTargetIE:
		if value != "" {
			_, err = condition.ParseEnvironment([]string{"IE=" + value})
		}
	case config.KeyRegistrationMode:
		_, err = host.ParseMode(value)
	case config.KeyFunctionsStrict:
		_, err = strconv.ParseBool(value)
	case config.KeyStylesheetsDir, config.KeyJavascriptsDir, config.KeyImagesDir:
		_, err = layout.Normalize(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}
