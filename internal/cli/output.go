package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Banner styles.
var (
	bannerBorder = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	bannerTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
)

func bannerCardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(bannerBorder.GetForeground()).
		Padding(0, 2)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printBanner prints text inside a bordered card on a terminal and as-is
// otherwise. The first line of text is used as the card title.
func printBanner(w io.Writer, text string) {
	text = strings.Trim(text, "\n")
	if text == "" {
		return
	}
	if !isTerminal(w) {
		fmt.Fprintln(w, text)
		return
	}

	title, body, _ := strings.Cut(text, "\n")
	content := bannerTitle.Render(strings.TrimSpace(title))
	if body = strings.Trim(body, "\n"); body != "" {
		content += "\n\n" + body
	}
	fmt.Fprintln(w, bannerCardStyle().Render(content))
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
