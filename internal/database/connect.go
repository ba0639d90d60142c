package database

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ConnectAll connects every module concurrently and registers the models of
// each successful connection in registry. An empty module list returns
// immediately.
//
// The first failing module cancels the context shared by the others, and its
// error is returned wrapped in ErrConnect. No retries are attempted. Modules
// that connected before the failure stay registered.
func ConnectAll(ctx context.Context, modules []Module, verbose bool, registry *Registry) error {
	if len(modules) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		name := m.Name()
		if name == "" {
			return ErrEmptyName
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateDatabase, name)
		}
		seen[name] = struct{}{}
	}

	for _, m := range modules {
		m.Connection(verbose)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range modules {
		g.Go(func() error {
			if err := m.Connect(gctx); err != nil {
				return fmt.Errorf("%w %q: %w", ErrConnect, m.Name(), err)
			}
			return registry.Add(m.Name(), m.Models())
		})
	}

	return g.Wait()
}
