package plan

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rwdkit/kickstart/internal/manifest"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// PrintPlan prints the plan as an aligned table followed by a summary.
func PrintPlan(w io.Writer, name string, p *Plan) {
	fmt.Fprintf(w, "Resolving %s for target %s...\n\n", name, p.Target)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, e := range p.Entries {
		meta := ""
		if e.Media != "" {
			meta = "[" + e.Media + "]"
		}
		if e.Condition != "" {
			meta = strings.TrimSpace(meta + " if " + e.Condition)
		}
		fmt.Fprintf(tw, "  %s\t<- %s\t%s\n", e.Destination, e.Source, meta)
	}
	tw.Flush()

	if len(p.Skipped) > 0 {
		fmt.Fprintln(w)
		for _, s := range p.Skipped {
			fmt.Fprintf(w, "  skipped %s (%s)\n", s.Source, s.Condition)
		}
	}

	fmt.Fprintln(w)
	var parts []string
	for _, kind := range manifest.ValidKinds {
		if count := p.Counts[kind]; count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, pluralize(kind, count)))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  Copy: %s (%d files)\n", strings.Join(parts, ", "), len(p.Entries))
	} else {
		fmt.Fprintln(w, "  Nothing to copy.")
	}
	fmt.Fprintln(w)
}

// PrintSummary prints one line per kind with a title-cased heading.
func PrintSummary(w io.Writer, p *Plan) {
	for _, kind := range manifest.ValidKinds {
		if count := p.Counts[kind]; count > 0 {
			fmt.Fprintf(w, "  %s: %d\n", titleCaser.String(pluralize(kind, 2)), count)
		}
	}
}

// pluralize returns the display noun for count files of kind.
func pluralize(kind manifest.Kind, count int) string {
	noun := string(kind)
	if kind == manifest.KindGeneric {
		noun = "file"
	}
	if count == 1 {
		return noun
	}
	return noun + "s"
}
