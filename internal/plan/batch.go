package plan

import (
	"context"
	"fmt"

	"github.com/rwdkit/kickstart/internal/condition"
	"github.com/rwdkit/kickstart/internal/manifest"
	"golang.org/x/sync/errgroup"
)

// Run is one independent plan request in a batch.
type Run struct {
	Name         string
	Declarations []manifest.FileDeclaration
	Env          condition.Environment
}

// BuildAll builds one plan per run concurrently. Runs share no mutable
// state; results are returned in input order. The first failure cancels
// runs that have not started and is returned with the run name.
func (b *Builder) BuildAll(ctx context.Context, runs []Run) ([]*Plan, error) {
	plans := make([]*Plan, len(runs))
	g, ctx := errgroup.WithContext(ctx)

	for i, run := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := b.Build(run.Declarations, run.Env)
			if err != nil {
				return fmt.Errorf("run %s: %w", run.Name, err)
			}
			plans[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
