//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths for an isolated test environment.
type testEnv struct {
	HomeDir      string
	TemplatesDir string
	WorkDir      string
	ProjectDir   string
}

// setupTestEnv creates an isolated home, template library and working
// directory, and points HOME at it for the duration of the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		HomeDir:      filepath.Join(root, "home"),
		TemplatesDir: filepath.Join(root, "home", ".kickstart", "templates"),
		WorkDir:      filepath.Join(root, "work"),
		ProjectDir:   filepath.Join(root, "work", "site"),
	}

	for _, dir := range []string{env.HomeDir, env.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating dir %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)

	return env
}

// setupLibrary writes a template library with a shared asset directory and
// two bundles under dir: "starter", which pulls stylesheets from ../shared
// and carries a legacy-only stylesheet, and "minimal".
func setupLibrary(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "shared", "_variables.scss"), "$base-font-size: 16px;\n")
	writeFile(t, filepath.Join(dir, "shared", "print.scss"), "@media print { body { color: #000; } }\n")
	writeFile(t, filepath.Join(dir, "shared", "loader.js"), "// loader\n")

	writeManifest(t, dir, "starter", `name: starter
version: "1.2.0"
description: Starter site
files:
  - source: style.scss
    kind: stylesheet
    media: screen, projection
  - source: ../shared/_variables.scss
    kind: stylesheet
    destination: stylesheets/partials/_variables.scss
  - source: ../shared/print.scss
    kind: stylesheet
    media: print
  - source: ie.scss
    kind: stylesheet
    media: screen, projection
    condition: lt IE 8
  - source: ../shared/loader.js
    kind: javascript
discover:
  - images
welcome_message: |
  {{ .ProjectName }} is ready with {{ len .Files }} files.
`)
	writeFile(t, filepath.Join(dir, "starter", "style.scss"), "@import \"partials/variables\";\n")
	writeFile(t, filepath.Join(dir, "starter", "ie.scss"), "// legacy overrides\n")
	writeFile(t, filepath.Join(dir, "starter", "images", "logo.png"), "png")
	writeFile(t, filepath.Join(dir, "starter", "images", "bg.png"), "png")

	writeManifest(t, dir, "minimal", `name: minimal
version: "0.1.0"
description: Minimal site
files:
  - source: index.html
`)
	writeFile(t, filepath.Join(dir, "minimal", "index.html"), "<!doctype html>\n")
}

// writeManifest creates a manifest.yaml at dir/<bundle>/manifest.yaml.
func writeManifest(t *testing.T, dir, bundle, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, bundle, "manifest.yaml"), content)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
