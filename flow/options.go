// SPDX-License-Identifier: MIT

package flow

// Strategy selects the shortest-path search used for each augmentation.
type Strategy uint8

const (
	// BellmanFord relaxes every residual arc each round: O(V·E) per path.
	// Ties follow arc order.
	BellmanFord Strategy = iota

	// Dijkstra runs one Bellman–Ford pass to seed node potentials, then
	// searches reduced costs with a binary heap: O((V+E) log V) per path.
	// Ties follow node order, so paths may differ from BellmanFord while
	// flow and cost stay identical.
	Dijkstra
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case BellmanFord:
		return "bellman-ford"
	case Dijkstra:
		return "dijkstra"
	default:
		return "unknown"
	}
}

// Options configures MinCostMaxFlow.
//
//   - MaxAugmentations: stop with ErrAugmentationLimit after this many paths (0 = unlimited).
//   - OnAugment:        called after each augmenting path is pushed.
//   - Strategy:         shortest-path search (default BellmanFord).
type Options struct {
	MaxAugmentations int
	OnAugment        func(Augmentation)
	Strategy         Strategy
}

// Option is a functional option for MinCostMaxFlow.
type Option func(*Options)

// DefaultOptions returns unlimited augmentations, no hook and Bellman–Ford.
func DefaultOptions() Options {
	return Options{}
}

// WithMaxAugmentations caps the number of augmenting paths.
// Panics if n <= 0.
func WithMaxAugmentations(n int) Option {
	if n <= 0 {
		panic("flow: WithMaxAugmentations(n<=0)")
	}

	return func(o *Options) {
		o.MaxAugmentations = n
	}
}

// WithAugmentHook registers fn to observe every augmenting path.
// The Path slice is owned by the callee. Panics on nil.
func WithAugmentHook(fn func(Augmentation)) Option {
	if fn == nil {
		panic("flow: WithAugmentHook(nil)")
	}

	return func(o *Options) {
		o.OnAugment = fn
	}
}

// WithStrategy selects the shortest-path search. Panics on unknown values.
func WithStrategy(st Strategy) Option {
	if st != BellmanFord && st != Dijkstra {
		panic("flow: WithStrategy(unknown)")
	}

	return func(o *Options) {
		o.Strategy = st
	}
}
