package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listSource string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List available templates",
	Long: `List template bundles from configured template paths, ~/.kickstart/templates/
and the built-in set. A bundle in an earlier source shadows one of the same name
in a later source. An optional query filters by name or description.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "", "Filter by source (builtin, user, or a configured path)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a template bundle for display.
type listEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Invalid     string `json:"invalid,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	bundles, err := registry.Discover(templateSources(s))
	if err != nil {
		return fmt.Errorf("discovering templates: %w", err)
	}

	var entries []listEntry
	for _, b := range bundles {
		if !matchesSearch(b, query, listSource) {
			continue
		}
		entries = append(entries, listEntry{
			Name:        b.Name,
			Version:     b.Version,
			Description: b.Description,
			Source:      b.Source,
			Invalid:     b.Invalid,
		})
	}

	if len(entries) == 0 {
		if query != "" || listSource != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates match.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
		}
		return nil
	}

	if listJSON {
		return printJSON(cmd.OutOrStdout(), entries)
	}
	return printListTable(cmd, entries)
}

// matchesSearch reports whether b passes the source filter and the
// case-insensitive substring query on name and description.
func matchesSearch(b registry.DiscoveredBundle, query, sourceFilter string) bool {
	if sourceFilter != "" && b.Source != sourceFilter {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		description := e.Description
		if e.Invalid != "" {
			description = "(invalid manifest)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, version, e.Source, description)
	}
	return w.Flush()
}
