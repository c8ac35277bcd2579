package cli

import (
	"fmt"
	"strings"

	"github.com/rwdkit/kickstart/internal/condition"
	"github.com/rwdkit/kickstart/internal/config"
	"github.com/rwdkit/kickstart/internal/manifest"
	"github.com/rwdkit/kickstart/internal/plan"
	"github.com/rwdkit/kickstart/internal/registry"
	"github.com/rwdkit/kickstart/internal/templates"
)

// targetModern clears any configured legacy engine when passed to --target.
const targetModern = "modern"

// templateSources returns the template search order for s.
func templateSources(s config.Settings) []registry.Source {
	return registry.DefaultSources(s.Templates.Paths, config.TemplatesDir(), templates.FS())
}

// targetEnvironment builds the target environment. Any --target flag
// replaces the configured default entirely; "--target modern" selects an
// environment without legacy engines.
func targetEnvironment(s config.Settings, flags []string) (condition.Environment, error) {
	pairs := s.TargetPairs()
	if len(flags) > 0 {
		pairs = nil
		for _, f := range flags {
			if strings.EqualFold(strings.TrimSpace(f), targetModern) {
				continue
			}
			pairs = append(pairs, f)
		}
	}
	return condition.ParseEnvironment(pairs)
}

// newBuilder returns a plan builder configured from s.
func newBuilder(s config.Settings) *plan.Builder {
	return plan.NewBuilder(plan.WithLayout(s.Layout), plan.WithLogger(logger))
}

// loadedBundle is a resolved bundle with its manifest and declarations.
type loadedBundle struct {
	bundle *registry.Bundle
	man    *manifest.Manifest
	decls  []manifest.FileDeclaration
}

// loadBundle resolves the template name and loads its manifest.
func loadBundle(name string, s config.Settings) (*loadedBundle, error) {
	b, err := registry.Resolve(name, templateSources(s))
	if err != nil {
		return nil, err
	}
	m, decls, err := manifest.Load(b.FS, b.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading template %s from %s: %w", name, b.SourceName, err)
	}
	return &loadedBundle{bundle: b, man: m, decls: decls}, nil
}
