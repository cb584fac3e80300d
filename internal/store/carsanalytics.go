package store

import (
	"context"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/mockdata"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
)

var carsPersist = persistSpec{name: storage.CarsStorageKey, version: 1}

// CarsAnalyticsStore owns the CARS chart bundle. The bundle is one atomic
// cache unit: every refetch replaces all series together, so charts never
// mix data from two fetches.
type CarsAnalyticsStore struct {
	apiState
	deps Deps
	log  *logger.Logger

	bundle    *models.CarsAnalyticsBundle
	timeRange models.TimeRange
}

type persistedCarsState struct {
	Bundle      *models.CarsAnalyticsBundle `json:"bundle"`
	TimeRange   models.TimeRange            `json:"selectedTimeRange"`
	LastFetched int64                       `json:"lastFetched,omitempty"`
}

// NewCarsAnalyticsStore builds the store and rehydrates its persisted
// projection.
func NewCarsAnalyticsStore(deps Deps) *CarsAnalyticsStore {
	s := &CarsAnalyticsStore{
		deps:      deps,
		log:       logger.Default().WithPrefix("cars_store"),
		timeRange: models.RangeMonth,
	}

	var snap persistedCarsState
	if rehydrate(context.Background(), deps.KV, carsPersist, &snap) {
		s.bundle = snap.Bundle
		if snap.TimeRange != "" {
			s.timeRange = snap.TimeRange
		}
		s.lastFetched = snap.LastFetched
	}
	return s
}

// Bundle returns a copy of the cached bundle, nil when never fetched.
func (s *CarsAnalyticsStore) Bundle() *models.CarsAnalyticsBundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle == nil {
		return nil
	}
	b := *s.bundle
	return &b
}

// TimeRange returns the selected reporting window.
func (s *CarsAnalyticsStore) TimeRange() models.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRange
}

func (s *CarsAnalyticsStore) persistLocked(ctx context.Context) {
	persist(ctx, s.deps.KV, carsPersist, persistedCarsState{
		Bundle:      s.bundle,
		TimeRange:   s.timeRange,
		LastFetched: s.lastFetched,
	})
}

// FetchCarsAnalytics loads the whole bundle for the selected time range.
func (s *CarsAnalyticsStore) FetchCarsAnalytics(ctx context.Context) {
	s.mu.Lock()
	hasData := s.bundle != nil
	timeRange := s.timeRange
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var bundle models.CarsAnalyticsBundle
	path := api.EndpointProgressChart + "?timeRange=" + string(timeRange)
	err := s.deps.Gateway.Get(ctx, path, &bundle)
	if err != nil {
		s.log.Error("failed to fetch CARS analytics: %v", err)
		if s.deps.Config.MockFallback {
			s.finishFallback(func() {
				mock := mockdata.CarsAnalytics()
				s.bundle = &mock
				s.persistLocked(ctx)
			}, apperrors.Message(err, err.Error()))
			return
		}
		s.finishError(apperrors.Message(err, "Failed to fetch CARS analytics data"))
		return
	}

	s.finishSuccess(func() {
		s.bundle = &bundle
		s.persistLocked(ctx)
	})
}

// SetSelectedTimeRange switches the reporting window; a change drops the
// bundle and refetches it whole.
func (s *CarsAnalyticsStore) SetSelectedTimeRange(ctx context.Context, timeRange models.TimeRange) {
	s.mu.Lock()
	if s.timeRange == timeRange {
		s.mu.Unlock()
		return
	}
	s.timeRange = timeRange
	s.bundle = nil
	s.lastFetched = 0
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.FetchCarsAnalytics(ctx)
}

// Reset restores every field to its initial value and clears the persisted
// snapshot.
func (s *CarsAnalyticsStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundle = nil
	s.timeRange = models.RangeMonth
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
	clearSnapshot(ctx, s.deps.KV, carsPersist)
}
