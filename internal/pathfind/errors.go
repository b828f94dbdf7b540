package pathfind

import "errors"

var (
	// ErrNoPath is returned when the start or goal cell is missing, the goal
	// is not walkable, or the frontier is exhausted. It is an expected outcome.
	ErrNoPath = errors.New("pathfind: no path found")

	// ErrQueueUnderflow is the panic value of Dequeue on an empty queue.
	ErrQueueUnderflow = errors.New("pathfind: dequeue from empty queue")

	// ErrUnknownTerrain reports a terrain without a registered weight.
	ErrUnknownTerrain = errors.New("pathfind: unknown terrain")

	// ErrInvalidWeight reports a non-positive or non-finite terrain weight.
	ErrInvalidWeight = errors.New("pathfind: invalid terrain weight")

	// ErrIterationLimit is returned when a search exceeds WithMaxIterations.
	ErrIterationLimit = errors.New("pathfind: iteration limit exceeded")

	// ErrUnknownAlgorithm is returned by New for an unregistered algorithm name.
	ErrUnknownAlgorithm = errors.New("pathfind: unknown algorithm")

	// ErrUnknownHeuristic is returned for an unregistered heuristic mode.
	ErrUnknownHeuristic = errors.New("pathfind: unknown heuristic")
)
