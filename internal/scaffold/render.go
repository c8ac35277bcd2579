package scaffold

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// WelcomeData holds the variables available to help and welcome templates.
type WelcomeData struct {
	ProjectName string   // base name of the output directory
	OutputDir   string   // absolute output directory
	Description string   // manifest description
	Files       []string // destinations written
	Target      string   // target environment, e.g. "IE=7.0.0" or "modern"
}

// RenderWelcome executes the manifest welcome message with data. An empty
// message renders as "".
func RenderWelcome(message string, data WelcomeData) (string, error) {
	return render("welcome_message", message, data)
}

// RenderHelp executes the manifest help text with data.
func RenderHelp(help string, data WelcomeData) (string, error) {
	return render("help", help, data)
}

func render(name, text string, data WelcomeData) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}
