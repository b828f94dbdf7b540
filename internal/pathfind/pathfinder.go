package pathfind

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pathfinder is the capability shared by every search strategy.
type Pathfinder interface {
	FindPath(ctx context.Context, start, goal Cell, optimize bool) ([]*Node, error)
}

// Searcher is a Pathfinder that also reports costs.
type Searcher interface {
	Pathfinder
	Search(ctx context.Context, start, goal Cell, optimize bool) (Result, error)
}

var (
	_ Searcher = (*AStar)(nil)
	_ Searcher = (*JPS)(nil)
)

// New builds the strategy named by kind.
func New(kind Algorithm, grid *Grid, opts ...Option) (Searcher, error) {
	switch kind {
	case AlgorithmAStar:
		return NewAStar(grid, opts...)
	case AlgorithmJPS:
		return NewJPS(grid, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, kind)
	}
}

// Query is one path request in a batch.
type Query struct {
	Start    Cell `yaml:"start"`
	Goal     Cell `yaml:"goal"`
	Optimize bool `yaml:"optimize"`
}

// BatchResult pairs a query with its outcome. Err is per query; ErrNoPath
// here does not fail the batch.
type BatchResult struct {
	Query Query
	Path  []*Node
	Err   error
}

// FindPaths runs queries concurrently, at most workers at a time (0 means no
// limit). Results keep the order of queries. Only context cancellation fails
// the whole batch.
func FindPaths(ctx context.Context, pf Pathfinder, queries []Query, workers int) ([]BatchResult, error) {
	results := make([]BatchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, q := range queries {
		g.Go(func() error {
			path, err := pf.FindPath(gctx, q.Start, q.Goal, q.Optimize)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			results[i] = BatchResult{Query: q, Path: path, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch of %d queries: %w", len(queries), err)
	}
	return results, nil
}
