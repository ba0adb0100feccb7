package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/chorewheel/assign"
	"github.com/katalvlaran/chorewheel/cost"
	"github.com/katalvlaran/chorewheel/household"
	"github.com/katalvlaran/chorewheel/internal/api"
	"github.com/katalvlaran/chorewheel/internal/notify"
	"github.com/katalvlaran/chorewheel/internal/store"
)

// memStore is an in-memory api.Store.
type memStore struct {
	mu         sync.Mutex
	households map[string]household.Household
	rounds     map[string][]store.Round
	applyErr   error
}

func newMemStore(hs ...household.Household) *memStore {
	m := &memStore{households: map[string]household.Household{}, rounds: map[string][]store.Round{}}
	for _, h := range hs {
		m.households[h.ID] = h
	}

	return m
}

func (m *memStore) Household(_ context.Context, id string) (household.Household, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.households[id]
	if !ok {
		return household.Household{}, fmt.Errorf("%w: household %q", store.ErrNotFound, id)
	}

	return h, nil
}

func (m *memStore) ApplyRound(_ context.Context, r store.Round) (store.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyErr != nil {
		return store.Round{}, m.applyErr
	}
	r.ID = fmt.Sprintf("r%d", len(m.rounds[r.HouseholdID])+1)
	m.rounds[r.HouseholdID] = append([]store.Round{r}, m.rounds[r.HouseholdID]...)

	return r, nil
}

func (m *memStore) Rounds(ctx context.Context, id string) ([]store.Round, error) {
	if _, err := m.Household(ctx, id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]store.Round{}, m.rounds[id]...), nil
}

type failingAssigner struct{ err error }

func (f failingAssigner) Assign(household.Household) (*assign.Result, error) { return nil, f.err }

type capturePublisher struct {
	events []notify.RoundEvent
	err    error
}

func (c *capturePublisher) Publish(_ context.Context, ev notify.RoundEvent) error {
	c.events = append(c.events, ev)

	return c.err
}

func (c *capturePublisher) Close() error { return nil }

func flat() household.Household {
	return household.Household{
		ID: "flat-3b",
		Users: []household.User{
			{ID: "ana", Preferences: map[string]household.Preference{
				"dishes": household.Favor, "trash": household.Neutral,
			}},
			{ID: "bo", Preferences: map[string]household.Preference{
				"dishes": household.Neutral, "trash": household.Avoid,
			}},
		},
		Chores: []household.Chore{{ID: "dishes", AssignedTo: "ana"}, {ID: "trash"}},
	}
}

// HandlerSuite drives the router through httptest.
type HandlerSuite struct {
	suite.Suite
	store  *memStore
	pub    *capturePublisher
	server *httptest.Server
}

func (s *HandlerSuite) SetupTest() {
	s.store = newMemStore(flat(), household.Household{
		ID:     "empty-users",
		Chores: []household.Chore{{ID: "mop"}},
	})
	s.pub = &capturePublisher{}
	engine := assign.NewEngine(assign.WithCostOptions(cost.WithoutNoise()))
	h := api.NewHandler(s.store, engine, api.WithPublisher(s.pub), api.WithPeriod(48*time.Hour))
	s.server = httptest.NewServer(api.NewRouter(h))
}

func (s *HandlerSuite) TearDownTest() {
	s.server.Close()
}

func (s *HandlerSuite) do(method, path string, out any) int {
	req, err := http.NewRequest(method, s.server.URL+path, nil)
	require.NoError(s.T(), err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func (s *HandlerSuite) TestHealth() {
	var body api.HealthResponse
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/health", &body))
	require.Equal(s.T(), "ok", body.Status)
}

func (s *HandlerSuite) TestGetHousehold() {
	var h household.Household
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/households/flat-3b", &h))
	require.Equal(s.T(), flat(), h)

	var e api.ErrorResponse
	require.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/households/nope", &e))
	require.Contains(s.T(), e.Error, "not found")
}

func (s *HandlerSuite) TestRunRound() {
	var round store.Round
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, "/households/flat-3b/assignments", &round))

	require.Equal(s.T(), "r1", round.ID)
	require.Equal(s.T(), int64(2), round.Flow)
	require.Equal(s.T(), int64(50), round.Cost)
	require.Equal(s.T(), 48*time.Hour, round.DueAt.Sub(round.CreatedAt))
	require.Equal(s.T(), []assign.Assignment{
		{UserID: "ana", ChoreID: "trash", Cost: 25},
		{UserID: "bo", ChoreID: "dishes", Cost: 25},
	}, round.Assignments)

	require.Len(s.T(), s.pub.events, 1)
	require.Equal(s.T(), "r1", s.pub.events[0].RoundID)
	require.Equal(s.T(), "flat-3b", s.pub.events[0].HouseholdID)

	var rounds []store.Round
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/households/flat-3b/rounds", &rounds))
	require.Len(s.T(), rounds, 1)
}

func (s *HandlerSuite) TestRunRoundDryRun() {
	var round store.Round
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, "/households/flat-3b/assignments?dryRun=true", &round))
	require.Empty(s.T(), round.ID)
	require.Len(s.T(), round.Assignments, 2)
	require.Empty(s.T(), s.pub.events)

	var rounds []store.Round
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/households/flat-3b/rounds", &rounds))
	require.Empty(s.T(), rounds)
}

func (s *HandlerSuite) TestRunRoundStatuses() {
	var e api.ErrorResponse
	require.Equal(s.T(), http.StatusNotFound, s.do(http.MethodPost, "/households/nope/assignments", &e))

	require.Equal(s.T(), http.StatusUnprocessableEntity, s.do(http.MethodPost, "/households/empty-users/assignments", &e))
	require.Contains(s.T(), e.Error, "no users")

	s.store.applyErr = errors.New("disk full")
	require.Equal(s.T(), http.StatusInternalServerError, s.do(http.MethodPost, "/households/flat-3b/assignments", &e))
	require.Equal(s.T(), http.StatusText(http.StatusInternalServerError), e.Error, "internal details stay in the log")
}

// TestPublishFailureKeepsRound: the round is committed even if the event is lost.
func (s *HandlerSuite) TestPublishFailureKeepsRound() {
	s.pub.err = errors.New("broker down")

	var round store.Round
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, "/households/flat-3b/assignments", &round))
	require.Equal(s.T(), "r1", round.ID)

	var rounds []store.Round
	s.do(http.MethodGet, "/households/flat-3b/rounds", &rounds)
	require.Len(s.T(), rounds, 1)
}

func (s *HandlerSuite) TestRoundsNotFound() {
	require.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/households/nope/rounds", nil))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func TestEngineFailureIs500(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"malformed": {fmt.Errorf("%w: cycle", assign.ErrMalformedGraph), http.StatusInternalServerError},
		"invalid":   {fmt.Errorf("%w: bad", assign.ErrInvalidInput), http.StatusUnprocessableEntity},
		"other":     {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := api.NewHandler(newMemStore(flat()), failingAssigner{err: tc.err})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/households/flat-3b/assignments", nil)
			api.NewRouter(h).ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := api.NewHandler(newMemStore(), failingAssigner{})
	rec := httptest.NewRecorder()
	api.NewRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { api.WithPeriod(0) })
	require.Panics(t, func() { api.WithPublisher(nil) })
	require.Panics(t, func() { api.WithLogger(nil) })
}
