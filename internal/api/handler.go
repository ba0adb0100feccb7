// SPDX-License-Identifier: MIT

// Package api exposes households and assignment rounds over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/chorewheel/assign"
	"github.com/katalvlaran/chorewheel/household"
	"github.com/katalvlaran/chorewheel/internal/notify"
	"github.com/katalvlaran/chorewheel/internal/store"
)

// Store is the persistence the handlers need. *store.Store satisfies it.
type Store interface {
	Household(ctx context.Context, id string) (household.Household, error)
	ApplyRound(ctx context.Context, r store.Round) (store.Round, error)
	Rounds(ctx context.Context, householdID string) ([]store.Round, error)
}

// Assigner computes a round. *assign.Engine satisfies it.
type Assigner interface {
	Assign(h household.Household) (*assign.Result, error)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the HTTP API.
type Handler struct {
	store     Store
	engine    Assigner
	publisher notify.Publisher
	logger    assign.Logger
	period    time.Duration
	now       func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithPublisher sets where persisted rounds are announced. Default: notify.Nop.
// Panics on nil.
func WithPublisher(p notify.Publisher) Option {
	if p == nil {
		panic("api: WithPublisher(nil)")
	}

	return func(h *Handler) { h.publisher = p }
}

// WithLogger sets the logger. Default: assign.NopLogger. Panics on nil.
func WithLogger(l assign.Logger) Option {
	if l == nil {
		panic("api: WithLogger(nil)")
	}

	return func(h *Handler) { h.logger = l }
}

// WithPeriod sets how far ahead a new round's due date lies. Default: 7 days.
func WithPeriod(d time.Duration) Option {
	if d <= 0 {
		panic("api: WithPeriod requires a positive duration")
	}

	return func(h *Handler) { h.period = d }
}

// NewHandler wires the handlers to their collaborators.
func NewHandler(st Store, engine Assigner, opts ...Option) *Handler {
	h := &Handler{
		store:     st,
		engine:    engine,
		publisher: notify.Nop{},
		logger:    assign.NopLogger(),
		period:    7 * 24 * time.Hour,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// NewRouter registers every route on a fresh mux.Router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/households/{id}", h.GetHousehold).Methods(http.MethodGet)
	r.HandleFunc("/households/{id}/assignments", h.RunRound).Methods(http.MethodPost)
	r.HandleFunc("/households/{id}/rounds", h.ListRounds).Methods(http.MethodGet)

	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetHousehold returns the stored snapshot.
func (h *Handler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	hh, err := h.store.Household(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hh)
}

// RunRound computes a round for the household, persists it with a due date
// one period ahead and publishes it.
//
// With ?dryRun=true the round is computed and returned but nothing is
// stored or published.
func (h *Handler) RunRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	hh, err := h.store.Household(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.engine.Assign(hh)
	if err != nil {
		h.writeError(w, err)
		return
	}

	now := h.now()
	round := store.Round{
		HouseholdID: id,
		Flow:        res.Flow,
		Cost:        res.Cost,
		DueAt:       now.Add(h.period),
		CreatedAt:   now,
		Assignments: res.Assignments,
	}
	if r.URL.Query().Get("dryRun") == "true" {
		writeJSON(w, http.StatusOK, round)
		return
	}

	if round, err = h.store.ApplyRound(ctx, round); err != nil {
		h.writeError(w, err)
		return
	}

	// The round is committed; a failed announcement does not undo it.
	if err = h.publisher.Publish(ctx, notify.RoundEvent{
		HouseholdID: round.HouseholdID,
		RoundID:     round.ID,
		Flow:        round.Flow,
		Cost:        round.Cost,
		DueAt:       round.DueAt,
		CreatedAt:   round.CreatedAt,
		Assignments: round.Assignments,
	}); err != nil {
		h.logger.Warn("round event not published", "household", id, "round", round.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, round)
}

// ListRounds returns recorded rounds, newest first.
func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.store.Rounds(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assign.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
