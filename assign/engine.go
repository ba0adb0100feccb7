// SPDX-License-Identifier: MIT

package assign

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/chorewheel/cost"
	"github.com/katalvlaran/chorewheel/flow"
	"github.com/katalvlaran/chorewheel/household"
)

// Assignment is one final (user, chore) decision.
type Assignment struct {
	UserID  string `json:"userId"`
	ChoreID string `json:"choreId"`
	Cost    int64  `json:"cost"`

	// LowConfidence marks an assignment priced at the unassignable sentinel:
	// the user never stated a preference for the chore.
	LowConfidence bool `json:"lowConfidence,omitempty"`
}

// Result is the outcome of one round.
type Result struct {
	HouseholdID string       `json:"householdId,omitempty"`
	Flow        int64        `json:"flow"`
	Cost        int64        `json:"cost"`
	Pairs       []Pair       `json:"-"`
	Assignments []Assignment `json:"assignments"`
}

// LowConfidence returns the sentinel-priced assignments.
func (r *Result) LowConfidence() []Assignment {
	var out []Assignment
	for _, a := range r.Assignments {
		if a.LowConfidence {
			out = append(out, a)
		}
	}

	return out
}

// ByUser groups assigned chore IDs by user ID, preserving result order.
func (r *Result) ByUser() map[string][]string {
	out := make(map[string][]string)
	for _, a := range r.Assignments {
		out[a.UserID] = append(out[a.UserID], a.ChoreID)
	}

	return out
}

// Engine runs assignment rounds. The zero value is not usable; call NewEngine.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	costOpts []cost.Option
	flowOpts []flow.Option
	logger   Logger
	metrics  Metrics
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCostOptions sets the options every per-round cost.Model is built with.
// Do not pass cost.WithRand with a shared source here: Models are created
// per call and may run concurrently. cost.WithSeed is concurrency-safe but
// gives every round the same noise, so ties resolve identically week after
// week; use it only in tests and reproducible replays.
func WithCostOptions(opts ...cost.Option) EngineOption {
	return func(e *Engine) {
		e.costOpts = append(e.costOpts, opts...)
	}
}

// WithSolverOptions forwards options to flow.MinCostMaxFlow.
func WithSolverOptions(opts ...flow.Option) EngineOption {
	return func(e *Engine) {
		e.flowOpts = append(e.flowOpts, opts...)
	}
}

// WithLogger sets the Logger. Panics on nil.
func WithLogger(l Logger) EngineOption {
	if l == nil {
		panic("assign: WithLogger(nil)")
	}

	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics sets the Metrics sink. Panics on nil.
func WithMetrics(m Metrics) EngineOption {
	if m == nil {
		panic("assign: WithMetrics(nil)")
	}

	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine builds an Engine with the default cost policy, real noise,
// and no-op logging and metrics unless overridden.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: NopLogger(), metrics: NopMetrics(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Assign computes the round for h: build, solve, extract, map back to users.
//
// On error no result is returned and nothing about h has changed; callers
// may retry with a fresh snapshot.
func (e *Engine) Assign(h household.Household) (*Result, error) {
	start := e.now()
	res, err := e.assign(h)

	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		outcome = OutcomeInvalidInput
	case errors.Is(err, ErrMalformedGraph):
		outcome = OutcomeMalformedGraph
	default:
		outcome = OutcomeError
	}
	e.metrics.RecordRound(outcome, e.now().Sub(start).Seconds())

	if err != nil {
		if outcome == OutcomeInvalidInput {
			e.logger.Warn("assignment round rejected", "household", h.ID, "error", err)
		} else {
			e.logger.Error("assignment round failed", "household", h.ID, "error", err)
		}

		return nil, err
	}

	low := len(res.LowConfidence())
	e.metrics.RecordAssignments(len(res.Assignments), low)
	if low > 0 {
		e.logger.Warn("chores assigned without a stated preference",
			"household", h.ID, "count", low)
	}
	e.logger.Info("assignment round complete",
		"household", h.ID, "flow", res.Flow, "cost", res.Cost)

	return res, nil
}

func (e *Engine) assign(h household.Household) (*Result, error) {
	// 1) Fresh model per round: owns its own noise source.
	model := cost.New(e.costOpts...)

	// 2) Network
	n, err := Build(h, model)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("flow network built",
		"household", h.ID,
		"slots", len(n.Slots),
		"chores", len(h.Chores),
		"nodes", n.Graph.NodeCount(),
		"edges", n.Graph.EdgeCount())

	// 3) Solve
	solved, err := flow.MinCostMaxFlow(n.Graph, e.flowOpts...)
	if err != nil {
		if errors.Is(err, flow.ErrInvalidGraph) || errors.Is(err, flow.ErrNegativeCycle) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
		}

		return nil, err
	}

	// 4) Extract and verify the partial bijection
	pairs := Extract(n, solved.Residual)
	if err = checkPairs(pairs, solved.Flow); err != nil {
		return nil, err
	}

	// 5) Map slots back to users
	out := &Result{
		HouseholdID: h.ID,
		Flow:        solved.Flow,
		Cost:        solved.Cost,
		Pairs:       pairs,
		Assignments: make([]Assignment, 0, len(pairs)),
	}
	for _, p := range pairs {
		user, ok := n.SlotOwner(p.Slot)
		if !ok {
			return nil, fmt.Errorf("%w: slot %d has no owner", ErrMalformedGraph, p.Slot)
		}
		chore, ok := n.ChoreAt(p.Chore)
		if !ok {
			return nil, fmt.Errorf("%w: node %d is not a chore", ErrMalformedGraph, p.Chore)
		}
		out.Assignments = append(out.Assignments, Assignment{
			UserID:        user,
			ChoreID:       chore,
			Cost:          p.Cost,
			LowConfidence: n.Unassignable(p.Edge),
		})
	}

	return out, nil
}
