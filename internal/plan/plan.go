package plan

import (
	"github.com/rwdkit/kickstart/internal/condition"
	"github.com/rwdkit/kickstart/internal/layout"
	"github.com/rwdkit/kickstart/internal/manifest"
	"go.uber.org/zap"
)

// Builder builds plans. A Builder holds no per-run state and may be shared
// across goroutines.
type Builder struct {
	layout layout.Layout
	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLayout sets the directory conventions used for derived destinations.
func WithLayout(l layout.Layout) Option {
	return func(b *Builder) { b.layout = l }
}

// WithLogger sets the logger for per-declaration debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder with the default layout.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{layout: layout.Default(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds a plan with the default builder.
func Build(decls []manifest.FileDeclaration, env condition.Environment) (*Plan, error) {
	return NewBuilder().Build(decls, env)
}

// Build evaluates decls in order against env and returns the plan. Any
// invalid condition, invalid destination or destination collision aborts
// the build with a *DeclarationError wrapping the cause.
func (b *Builder) Build(decls []manifest.FileDeclaration, env condition.Environment) (*Plan, error) {
	p := &Plan{
		Target:  env.String(),
		Entries: make([]Entry, 0, len(decls)),
		Counts:  make(map[manifest.Kind]int),
	}
	seen := make(map[string]DeclarationRef, len(decls))

	for i, decl := range decls {
		pred, err := condition.Parse(decl.Condition)
		if err != nil {
			return nil, &DeclarationError{Index: i, Source: decl.Source, Err: err}
		}
		if !condition.Evaluate(pred, env) {
			b.logger.Debug("declaration skipped",
				zap.Int("index", i),
				zap.String("source", decl.Source),
				zap.String("condition", decl.Condition))
			p.Skipped = append(p.Skipped, Skipped{Index: i, Source: decl.Source, Condition: decl.Condition})
			continue
		}

		dest, err := b.layout.Resolve(decl)
		if err != nil {
			return nil, &DeclarationError{Index: i, Source: decl.Source, Err: err}
		}

		ref := DeclarationRef{Index: i, Source: decl.Source}
		if first, dup := seen[dest]; dup {
			return nil, &DeclarationError{
				Index:  i,
				Source: decl.Source,
				Err:    &DestinationCollisionError{Destination: dest, First: first, Second: ref},
			}
		}
		seen[dest] = ref

		kind := decl.Kind
		if kind == "" {
			kind = manifest.KindGeneric
		}
		p.Entries = append(p.Entries, Entry{
			Index:       i,
			Source:      decl.Source,
			Destination: dest,
			Kind:        kind,
			Media:       decl.Media,
			Condition:   decl.Condition,
		})
		p.Counts[kind]++

		b.logger.Debug("declaration planned",
			zap.Int("index", i),
			zap.String("source", decl.Source),
			zap.String("destination", dest))
	}

	return p, nil
}

// Lint checks every declaration independently of any target environment:
// each condition must parse and each destination must resolve. Collisions
// are not checked, since declarations with exclusive conditions may share
// a destination.
func (b *Builder) Lint(decls []manifest.FileDeclaration) error {
	for i, decl := range decls {
		if _, err := condition.Parse(decl.Condition); err != nil {
			return &DeclarationError{Index: i, Source: decl.Source, Err: err}
		}
		if _, err := b.layout.Resolve(decl); err != nil {
			return &DeclarationError{Index: i, Source: decl.Source, Err: err}
		}
	}
	return nil
}
