//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rwdkit/kickstart/internal/condition"
	"github.com/rwdkit/kickstart/internal/host"
	"github.com/rwdkit/kickstart/internal/manifest"
	"github.com/rwdkit/kickstart/internal/plan"
	"github.com/rwdkit/kickstart/internal/registry"
	"github.com/rwdkit/kickstart/internal/scaffold"
	"github.com/rwdkit/kickstart/internal/templates"
)

// scaffoldBundle runs the full flow for one bundle:
// resolve -> load manifest -> build plan -> execute into outDir.
func scaffoldBundle(t *testing.T, sources []registry.Source, name string, pairs []string, outDir string) (*manifest.Manifest, *plan.Plan, *scaffold.Result) {
	t.Helper()

	bundle, err := registry.Resolve(name, sources)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", name, err)
	}

	m, decls, err := manifest.Load(bundle.FS, bundle.Dir)
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}

	env, err := condition.ParseEnvironment(pairs)
	if err != nil {
		t.Fatalf("ParseEnvironment(%v): %v", pairs, err)
	}

	p, err := plan.Build(decls, env)
	if err != nil {
		t.Fatalf("Build(%s): %v", name, err)
	}

	result, err := scaffold.Execute(context.Background(), p, bundle.FS, bundle.Dir, outDir, scaffold.Options{})
	if err != nil {
		t.Fatalf("Execute(%s): %v", name, err)
	}
	return m, p, result
}

// TestFullFlowLegacyTarget tests the complete flow for a legacy browser target:
// library on disk -> resolve -> plan -> scaffold -> verify files and welcome text.
func TestFullFlowLegacyTarget(t *testing.T) {
	env := setupTestEnv(t)
	library := filepath.Join(env.WorkDir, "library")
	setupLibrary(t, library)

	sources := []registry.Source{registry.DirSource("library", library)}
	m, p, result := scaffoldBundle(t, sources, "starter", []string{"IE=7"}, env.ProjectDir)

	// Step 1: Verify the plan. Explicit files come first, discovered images after.
	wantDest := []string{
		"stylesheets/style.scss",
		"stylesheets/partials/_variables.scss",
		"stylesheets/print.scss",
		"stylesheets/ie.scss",
		"javascripts/loader.js",
		"images/bg.png",
		"images/logo.png",
	}
	if len(p.Entries) != len(wantDest) {
		t.Fatalf("got %d entries, want %d: %+v", len(p.Entries), len(wantDest), p.Entries)
	}
	for i, want := range wantDest {
		if p.Entries[i].Destination != want {
			t.Errorf("entry %d destination = %q, want %q", i, p.Entries[i].Destination, want)
		}
	}
	if len(p.Skipped) != 0 {
		t.Errorf("expected no skipped declarations, got %+v", p.Skipped)
	}
	if p.Counts[manifest.KindStylesheet] != 4 || p.Counts[manifest.KindImage] != 2 {
		t.Errorf("unexpected counts: %v", p.Counts)
	}

	// Step 2: Verify the files on disk, including shared sources reached via "..".
	for _, dest := range wantDest {
		assertFileExists(t, filepath.Join(env.ProjectDir, filepath.FromSlash(dest)))
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "stylesheets", "partials", "_variables.scss"), "$base-font-size")
	assertFileContains(t, filepath.Join(env.ProjectDir, "stylesheets", "ie.scss"), "legacy overrides")
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "manifest.yaml"))

	if result.RunID == "" {
		t.Error("expected a run id")
	}
	if len(result.Files) != len(wantDest) {
		t.Errorf("result lists %d files, want %d", len(result.Files), len(wantDest))
	}

	// Step 3: Render the welcome message from the result.
	welcome, err := scaffold.RenderWelcome(m.WelcomeMessage, scaffold.WelcomeData{
		ProjectName: filepath.Base(result.OutputDir),
		OutputDir:   result.OutputDir,
		Files:       result.Files,
		Target:      p.Target,
	})
	if err != nil {
		t.Fatalf("RenderWelcome: %v", err)
	}
	if welcome != "site is ready with 7 files.\n" {
		t.Errorf("welcome = %q", welcome)
	}
}

// TestFullFlowModernTarget verifies that legacy-only files are skipped and
// never written when no target is given.
func TestFullFlowModernTarget(t *testing.T) {
	env := setupTestEnv(t)
	library := filepath.Join(env.WorkDir, "library")
	setupLibrary(t, library)

	sources := []registry.Source{registry.DirSource("library", library)}
	_, p, result := scaffoldBundle(t, sources, "starter", nil, env.ProjectDir)

	if len(p.Entries) != 6 {
		t.Errorf("got %d entries, want 6", len(p.Entries))
	}
	if len(p.Skipped) != 1 || p.Skipped[0].Source != "ie.scss" {
		t.Errorf("expected ie.scss to be skipped, got %+v", p.Skipped)
	}
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "stylesheets", "ie.scss"))
	assertFileExists(t, filepath.Join(env.ProjectDir, "stylesheets", "style.scss"))
	if len(result.Files) != 6 {
		t.Errorf("result lists %d files, want 6", len(result.Files))
	}
}

// TestScaffoldRefusesNonEmptyOutput verifies a second run into the same
// directory requires Force.
func TestScaffoldRefusesNonEmptyOutput(t *testing.T) {
	env := setupTestEnv(t)
	library := filepath.Join(env.WorkDir, "library")
	setupLibrary(t, library)

	sources := []registry.Source{registry.DirSource("library", library)}
	_, p, _ := scaffoldBundle(t, sources, "minimal", nil, env.ProjectDir)

	bundle, err := registry.Resolve("minimal", sources)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	_, err = scaffold.Execute(context.Background(), p, bundle.FS, bundle.Dir, env.ProjectDir, scaffold.Options{})
	if !errors.Is(err, scaffold.ErrOutputNotEmpty) {
		t.Fatalf("expected ErrOutputNotEmpty, got %v", err)
	}

	if _, err := scaffold.Execute(context.Background(), p, bundle.FS, bundle.Dir, env.ProjectDir, scaffold.Options{Force: true}); err != nil {
		t.Fatalf("Execute with Force: %v", err)
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "index.html"), "<!doctype html>")
}

// TestInstalledTemplateShadowsBuiltin tests install -> resolve precedence ->
// scaffold -> remove -> builtin again.
func TestInstalledTemplateShadowsBuiltin(t *testing.T) {
	env := setupTestEnv(t)

	// Step 1: Author a local bundle that reuses the builtin name.
	src := filepath.Join(env.WorkDir, "my-project")
	writeManifest(t, env.WorkDir, "my-project", `name: project
version: "9.0.0"
description: Local override
files:
  - source: README.md
`)
	writeFile(t, filepath.Join(src, "README.md"), "# override\n")
	writeFile(t, filepath.Join(src, "node_modules", "junk.js"), "junk")

	// Step 2: Install it into the user library under its manifest name.
	dst, err := registry.Install(src, env.TemplatesDir)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if dst != filepath.Join(env.TemplatesDir, "project") {
		t.Errorf("installed to %s", dst)
	}
	assertFileNotExists(t, filepath.Join(dst, "node_modules", "junk.js"))

	// Step 3: The user copy wins over the embedded one.
	sources := registry.DefaultSources(nil, env.TemplatesDir, templates.FS())
	bundle, err := registry.Resolve("project", sources)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if bundle.SourceName != registry.SourceUser {
		t.Errorf("resolved from %q, want %q", bundle.SourceName, registry.SourceUser)
	}

	_, _, result := scaffoldBundle(t, sources, "project", nil, env.ProjectDir)
	if len(result.Files) != 1 || result.Files[0] != "README.md" {
		t.Errorf("unexpected files: %v", result.Files)
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "README.md"), "override")

	// Step 4: After removal the builtin is visible again.
	if err := registry.Remove("project", env.TemplatesDir); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	bundle, err = registry.Resolve("project", sources)
	if err != nil {
		t.Fatalf("Resolve after remove: %v", err)
	}
	if bundle.SourceName != registry.SourceBuiltin {
		t.Errorf("resolved from %q, want %q", bundle.SourceName, registry.SourceBuiltin)
	}
}

// TestBuiltinProjectScaffold scaffolds the embedded project bundle for a
// legacy target and checks shared assets land in their partials directory.
func TestBuiltinProjectScaffold(t *testing.T) {
	env := setupTestEnv(t)

	sources := registry.DefaultSources(nil, env.TemplatesDir, templates.FS())
	_, p, _ := scaffoldBundle(t, sources, "project", []string{"IE=7"}, env.ProjectDir)

	var sawIE bool
	for _, e := range p.Entries {
		if e.Condition != "" {
			sawIE = true
		}
		assertFileExists(t, filepath.Join(env.ProjectDir, filepath.FromSlash(e.Destination)))
	}
	if !sawIE {
		t.Error("expected the conditional stylesheet in a legacy plan")
	}
	assertFileExists(t, filepath.Join(env.ProjectDir, "stylesheets", "partials", "_variables.scss"))
	assertFileExists(t, filepath.Join(env.ProjectDir, "javascripts", "loader.js"))
}

// TestLibraryRegistration registers a template library with the host in
// both modes.
func TestLibraryRegistration(t *testing.T) {
	env := setupTestEnv(t)
	library := filepath.Join(env.WorkDir, "library")
	setupLibrary(t, library)

	hostEnv := host.NewEnvironment(nil)

	framework, err := host.NewRegistrar(host.ModeFramework, "kickstart", hostEnv)
	if err != nil {
		t.Fatalf("NewRegistrar(framework): %v", err)
	}
	if err := framework.RegisterSearchPath(library); err != nil {
		t.Fatalf("RegisterSearchPath(framework): %v", err)
	}
	if dir, ok := hostEnv.Framework("kickstart"); !ok || dir != library {
		t.Errorf("Framework(kickstart) = %q, %v", dir, ok)
	}

	loadPath, err := host.NewRegistrar(host.ModeLoadPath, "", hostEnv)
	if err != nil {
		t.Fatalf("NewRegistrar(load-path): %v", err)
	}
	if err := loadPath.RegisterSearchPath(library); err != nil {
		t.Fatalf("RegisterSearchPath(load-path): %v", err)
	}
	if err := loadPath.RegisterSearchPath(library); err != nil {
		t.Fatalf("RegisterSearchPath(load-path) again: %v", err)
	}

	paths := hostEnv.LoadPaths()
	want := filepath.Join(library, "stylesheets")
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("LoadPaths() = %v, want [%s]", paths, want)
	}
	if !strings.Contains(hostEnv.LoadPathValue(), want) {
		t.Errorf("LoadPathValue() = %q", hostEnv.LoadPathValue())
	}
	if _, err := os.Stat(library); err != nil {
		t.Errorf("library should be untouched: %v", err)
	}
}
