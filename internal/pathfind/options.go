package pathfind

import (
	"fmt"
	"log/slog"
)

// HeuristicMode selects how the distance-to-goal estimate is scaled.
type HeuristicMode string

const (
	// HeuristicAdmissible multiplies the Euclidean distance by the smallest
	// terrain weight, so the estimate never exceeds the true remaining cost.
	HeuristicAdmissible HeuristicMode = "admissible"

	// HeuristicEuclidean uses the raw Euclidean distance. With weights below 1
	// it may overestimate and A* can return a costlier path than the optimum.
	HeuristicEuclidean HeuristicMode = "euclidean"
)

// Algorithm names a search strategy.
type Algorithm string

const (
	AlgorithmAStar Algorithm = "astar"
	AlgorithmJPS   Algorithm = "jps"
)

// Options configures a search strategy.
type Options struct {
	Weights       Weights
	Heuristic     HeuristicMode
	MaxIterations int // 0 means unlimited
	Logger        *slog.Logger
}

// Option is a functional option for strategy constructors.
type Option func(*Options)

// DefaultOptions returns the stock weight table, the admissible heuristic,
// no iteration limit and slog.Default().
func DefaultOptions() Options {
	return Options{
		Weights:   DefaultWeights(),
		Heuristic: HeuristicAdmissible,
		Logger:    slog.Default(),
	}
}

// WithWeights replaces the terrain weight table. The table is copied.
func WithWeights(w Weights) Option {
	return func(o *Options) { o.Weights = w.clone() }
}

// WithHeuristic selects the heuristic scaling.
func WithHeuristic(mode HeuristicMode) Option {
	return func(o *Options) { o.Heuristic = mode }
}

// WithMaxIterations caps the number of node expansions per search.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Weights.Validate(); err != nil {
		return o, err
	}
	switch o.Heuristic {
	case HeuristicAdmissible, HeuristicEuclidean:
	default:
		return o, fmt.Errorf("%w: %q", ErrUnknownHeuristic, o.Heuristic)
	}
	if o.MaxIterations < 0 {
		return o, fmt.Errorf("pathfind: max iterations must be non-negative, got %d", o.MaxIterations)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o, nil
}

// heuristicScale returns the factor applied to the Euclidean estimate.
func (o Options) heuristicScale() float64 {
	if o.Heuristic == HeuristicEuclidean {
		return 1
	}
	return o.Weights.Min()
}
