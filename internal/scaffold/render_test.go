package scaffold

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	data := WelcomeData{
		ProjectName: "my-site",
		OutputDir:   "/tmp/my-site",
		Files:       []string{"a", "b", "c"},
		Target:      "IE=7.0.0",
	}

	got, err := RenderWelcome("Welcome to {{ .ProjectName }}!\nTarget: {{ .Target }}\nFiles: {{ len .Files }}\n\n\n", data)
	if err != nil {
		t.Fatalf("RenderWelcome: %v", err)
	}
	want := "Welcome to my-site!\nTarget: IE=7.0.0\nFiles: 3\n"
	if got != want {
		t.Errorf("RenderWelcome = %q, want %q", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	got, err := RenderHelp("  \n", WelcomeData{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("RenderHelp = %q, want empty", got)
	}
}

func TestRenderPlainText(t *testing.T) {
	got, err := RenderHelp("<!--[if lt IE 9 ]> contact us <![endif]-->", WelcomeData{})
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, got, "<!--[if lt IE 9 ]>")
}

func TestRenderErrors(t *testing.T) {
	if _, err := RenderWelcome("{{ .ProjectName", WelcomeData{}); err == nil || !strings.Contains(err.Error(), "parsing welcome_message") {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, err := RenderHelp("{{ .Unknown }}", WelcomeData{}); err == nil || !strings.Contains(err.Error(), "executing help") {
		t.Errorf("expected execution error, got %v", err)
	}
}
