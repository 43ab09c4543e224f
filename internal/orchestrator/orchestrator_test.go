package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightvalue/internal/fallback"
	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/providers"
	"github.com/dharmasatrya/flightvalue/internal/random"
	"github.com/dharmasatrya/flightvalue/internal/ratelimit"
	"github.com/dharmasatrya/flightvalue/internal/reconcile"
	"github.com/dharmasatrya/flightvalue/internal/report"
)

var params = models.SearchParams{Origin: "lax", Destination: "jfk", Date: "2025-12-15"}

type fakeProvider struct {
	mu           sync.Mutex
	acquireErrs  []error
	searchErrs   map[models.SearchMode][]error
	observations map[models.SearchMode][]models.RawObservation
	acquires     int
	searches     []models.SearchMode
	closed       int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Acquire(ctx context.Context, params models.SearchParams) (providers.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquires++
	if len(p.acquireErrs) > 0 {
		err := p.acquireErrs[0]
		p.acquireErrs = p.acquireErrs[1:]
		return nil, err
	}
	return &fakeSession{provider: p}, nil
}

type fakeSession struct {
	provider *fakeProvider
}

func (s *fakeSession) Search(ctx context.Context, mode models.SearchMode) ([]models.RawObservation, error) {
	p := s.provider
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searches = append(p.searches, mode)
	if errs := p.searchErrs[mode]; len(errs) > 0 {
		p.searchErrs[mode] = errs[1:]
		return nil, errs[0]
	}
	return p.observations[mode], nil
}

func (s *fakeSession) Close() error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	s.provider.closed++
	return nil
}

func newOrchestrator(p providers.Provider) *Orchestrator {
	catalog := fallback.NewDefaultCatalog(random.New(1))
	return New(p, reconcile.NewReconciler(catalog, random.New(1)), report.NewBuilder(catalog), Config{
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		RetryDelays: []time.Duration{time.Millisecond},
		RateLimiter: ratelimit.Unlimited(),
	})
}

func liveObservations() map[models.SearchMode][]models.RawObservation {
	return map[models.SearchMode][]models.RawObservation{
		models.ModeAward: {
			{Flight: "AA 1", Departure: "9:00", Points: "15K + $5.60"},
			{Flight: "AA 2", Departure: "11:00", Points: "20,000"},
		},
		models.ModeCash: {
			{Flight: "AA1", Departure: "09:00", Cash: "$179"},
			{Flight: "AA2", Departure: "11:00", Cash: "$325.60"},
		},
	}
}

func temporary(msg string) error {
	return fmt.Errorf("%w: %s", providers.ErrTemporary, msg)
}

func TestRun(t *testing.T) {
	p := &fakeProvider{observations: liveObservations()}

	rep, err := newOrchestrator(p).Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, rep.Source)
	assert.Equal(t, "LAX", rep.SearchMetadata.Origin)
	assert.Equal(t, "JFK", rep.SearchMetadata.Destination)
	assert.Equal(t, 1, rep.SearchMetadata.Passengers)
	assert.Equal(t, "economy", rep.SearchMetadata.CabinClass)

	require.Equal(t, 2, rep.TotalResults)
	assert.Equal(t, "AA2", rep.Flights[0].FlightNumber)
	assert.Equal(t, 1.6, rep.Flights[0].CPP)
	assert.Equal(t, "AA1", rep.Flights[1].FlightNumber)
	assert.Equal(t, 1.16, rep.Flights[1].CPP)

	assert.Equal(t, []models.SearchMode{models.ModeAward, models.ModeCash}, p.searches)
	assert.Equal(t, 1, p.acquires)
	assert.Equal(t, 1, p.closed)
}

func TestRunRejectsInvalidSearch(t *testing.T) {
	p := &fakeProvider{}

	_, err := newOrchestrator(p).Run(context.Background(), models.SearchParams{Origin: "LAX", Destination: "LAX", Date: "2025-12-15"})

	assert.ErrorIs(t, err, models.ErrSameOriginDestination)
	assert.Zero(t, p.acquires)
}

func TestRunFallsBackWhenSessionUnavailable(t *testing.T) {
	p := &fakeProvider{acquireErrs: []error{errors.New("browser crashed")}}

	rep, err := newOrchestrator(p).Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, models.SourceFallback, rep.Source)
	assert.Equal(t, fallback.DefaultSize, rep.TotalResults)
	assert.Equal(t, 1, p.acquires, "permanent failures are not retried")
	assert.Empty(t, p.searches)
}

func TestRunRetriesTemporaryFailures(t *testing.T) {
	p := &fakeProvider{
		acquireErrs: []error{temporary("challenge page")},
		searchErrs: map[models.SearchMode][]error{
			models.ModeCash: {temporary("timeout"), temporary("timeout")},
		},
		observations: liveObservations(),
	}

	rep, err := newOrchestrator(p).Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, rep.Source)
	assert.Equal(t, 2, p.acquires)
	assert.Equal(t, []models.SearchMode{models.ModeAward, models.ModeCash, models.ModeCash, models.ModeCash}, p.searches)
}

func TestRunGivesUpAfterMaxRetries(t *testing.T) {
	p := &fakeProvider{
		searchErrs: map[models.SearchMode][]error{
			models.ModeAward: {temporary("1"), temporary("2"), temporary("3"), temporary("4")},
		},
		observations: liveObservations(),
	}

	rep, err := newOrchestrator(p).Run(context.Background(), params)
	require.NoError(t, err)

	awardAttempts := 0
	for _, m := range p.searches {
		if m == models.ModeAward {
			awardAttempts++
		}
	}
	assert.Equal(t, 3, awardAttempts)
	assert.Equal(t, models.SourceFallback, rep.Source, "cash alone cannot be merged")
	assert.Equal(t, 1, p.closed)
}

func TestCollectCashFailureKeepsAward(t *testing.T) {
	p := &fakeProvider{
		searchErrs:   map[models.SearchMode][]error{models.ModeCash: {errors.New("selector not found")}},
		observations: liveObservations(),
	}

	result := newOrchestrator(p).Collect(context.Background(), params)

	assert.Len(t, result.AwardFlights, 2)
	assert.Empty(t, result.CashFlights)
	assert.Equal(t, params, result.Params)
}

func TestCollectStopsOnCancel(t *testing.T) {
	p := &fakeProvider{acquireErrs: []error{temporary("busy"), temporary("busy"), temporary("busy")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newOrchestrator(p).Collect(ctx, params)

	assert.Empty(t, result.AwardFlights)
	assert.Empty(t, result.CashFlights)
	assert.Zero(t, p.acquires)
}
