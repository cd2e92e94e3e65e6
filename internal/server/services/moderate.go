package services

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/server/moderation"
	"golang.org/x/sync/errgroup"
)

// moderateAll checks every text concurrently and writes the censored
// results back in place. The first failure cancels the remaining checks
// and nothing is written back unless all succeed.
func moderateAll(ctx context.Context, m moderation.Checker, texts ...*string) error {
	out := make([]string, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range texts {
		g.Go(func() error {
			s, err := m.Check(gctx, *t)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, t := range texts {
		*t = out[i]
	}
	return nil
}
