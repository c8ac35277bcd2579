package registry

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func manifestFile(name, description string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("name: " + name + "\nversion: \"1.0.0\"\ndescription: " + description + "\n")}
}

func builtinFS() fstest.MapFS {
	return fstest.MapFS{
		"project/manifest.yaml":         manifestFile("project", "Responsive Web Design Kickstart"),
		"project/style.scss":            {Data: []byte("// style")},
		"susy-respond-to/manifest.yaml": manifestFile("susy-respond-to", "Susy grid with respond-to"),
		"shared/_base.scss":             {Data: []byte("// base")},
		"README.md":                     {Data: []byte("readme")},
	}
}

func userFS() fstest.MapFS {
	return fstest.MapFS{
		"project/manifest.yaml": manifestFile("project", "House style"),
		"blog/manifest.yaml":    manifestFile("blog", "Blog starter"),
	}
}

func TestResolveFirstSourceWins(t *testing.T) {
	sources := []Source{
		{Name: "user", FS: userFS(), Dir: "/home/me/.kickstart/templates"},
		{Name: "builtin", FS: builtinFS()},
	}

	b, err := Resolve("project", sources)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.SourceName != "user" {
		t.Errorf("SourceName = %q, want %q", b.SourceName, "user")
	}
	if b.Dir != "project" {
		t.Errorf("Dir = %q, want %q", b.Dir, "project")
	}
	if b.BaseDir != "/home/me/.kickstart/templates" {
		t.Errorf("BaseDir = %q", b.BaseDir)
	}
}

func TestResolveFallsBackToLaterSource(t *testing.T) {
	sources := []Source{
		{Name: "user", FS: userFS()},
		{Name: "builtin", FS: builtinFS()},
	}

	b, err := Resolve("susy-respond-to", sources)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.SourceName != "builtin" {
		t.Errorf("SourceName = %q, want %q", b.SourceName, "builtin")
	}
	if b.BaseDir != "" {
		t.Errorf("BaseDir = %q, want empty for embedded source", b.BaseDir)
	}
}

func TestResolveNotFound(t *testing.T) {
	sources := []Source{{Name: "builtin", FS: builtinFS()}}

	for _, name := range []string{"missing", "shared"} {
		_, err := Resolve(name, sources)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrTemplateNotFound", name, err)
		}
	}
}

func TestResolveRejectsInvalidNames(t *testing.T) {
	sources := []Source{{Name: "builtin", FS: builtinFS()}}

	for _, name := range []string{"", ".", "..", "../project", "project/sub", "/project"} {
		_, err := Resolve(name, sources)
		if err == nil {
			t.Errorf("Resolve(%q) expected error", name)
		}
		if errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Resolve(%q) should reject the name, not report not found", name)
		}
	}
}

func TestDefaultSourcesOrder(t *testing.T) {
	sources := DefaultSources([]string{"/srv/templates", "", "./local"}, "/home/me/.kickstart/templates", builtinFS())

	want := []string{"/srv/templates", "./local", SourceUser, SourceBuiltin}
	if len(sources) != len(want) {
		t.Fatalf("got %d sources, want %d", len(sources), len(want))
	}
	for i, name := range want {
		if sources[i].Name != name {
			t.Errorf("sources[%d].Name = %q, want %q", i, sources[i].Name, name)
		}
	}
	if sources[3].Dir != "" {
		t.Errorf("builtin Dir = %q, want empty", sources[3].Dir)
	}
}

func TestDefaultSourcesWithoutBuiltin(t *testing.T) {
	sources := DefaultSources(nil, "", nil)
	if len(sources) != 0 {
		t.Errorf("got %d sources, want 0", len(sources))
	}
}

func TestResolveFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "landing"), "landing")

	b, err := Resolve("landing", []Source{DirSource("local", dir)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", b.BaseDir, dir)
	}
}
