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

var analyticsPersist = persistSpec{name: storage.AnalyticsStorageKey, version: 1}

// AnalyticsStore owns the dashboard summary: three fixed sub-reports keyed
// to a selected time range.
type AnalyticsStore struct {
	apiState
	deps Deps
	log  *logger.Logger

	analytics *models.AnalyticsData
	timeRange models.TimeRange
}

type persistedAnalyticsState struct {
	Analytics   *models.AnalyticsData `json:"analytics"`
	TimeRange   models.TimeRange      `json:"timeRange"`
	LastFetched int64                 `json:"lastFetched,omitempty"`
}

// NewAnalyticsStore builds the store and rehydrates its persisted projection.
func NewAnalyticsStore(deps Deps) *AnalyticsStore {
	s := &AnalyticsStore{
		deps:      deps,
		log:       logger.Default().WithPrefix("analytics_store"),
		timeRange: models.RangeMonth,
	}

	var snap persistedAnalyticsState
	if rehydrate(context.Background(), deps.KV, analyticsPersist, &snap) {
		s.analytics = snap.Analytics
		if snap.TimeRange != "" {
			s.timeRange = snap.TimeRange
		}
		s.lastFetched = snap.LastFetched
	}
	return s
}

// Analytics returns a copy of the cached summary, nil when never fetched.
func (s *AnalyticsStore) Analytics() *models.AnalyticsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analytics == nil {
		return nil
	}
	a := *s.analytics
	return &a
}

// TimeRange returns the selected reporting window.
func (s *AnalyticsStore) TimeRange() models.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRange
}

func (s *AnalyticsStore) persistLocked(ctx context.Context) {
	persist(ctx, s.deps.KV, analyticsPersist, persistedAnalyticsState{
		Analytics:   s.analytics,
		TimeRange:   s.timeRange,
		LastFetched: s.lastFetched,
	})
}

// FetchAnalytics loads the summary for the selected time range, honoring
// the in-flight guard and the staleness window.
func (s *AnalyticsStore) FetchAnalytics(ctx context.Context) {
	s.mu.Lock()
	hasData := s.analytics != nil
	timeRange := s.timeRange
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var data models.AnalyticsData
	err := s.deps.Gateway.Get(ctx, api.EndpointAnalyticsSummaryFor(string(timeRange)), &data)
	if err != nil {
		s.log.Error("failed to fetch analytics: %v", err)
		if s.deps.Config.MockFallback {
			s.finishFallback(func() {
				mock := mockdata.Analytics()
				s.analytics = &mock
				s.persistLocked(ctx)
			}, apperrors.Message(err, err.Error()))
			return
		}
		s.finishError(apperrors.Message(err, "Failed to fetch analytics data"))
		return
	}

	s.finishSuccess(func() {
		s.analytics = &data
		s.persistLocked(ctx)
	})
}

// GetAnalytics returns the cached summary, fetching first when none exists.
// The result may still be nil after a failed fetch.
func (s *AnalyticsStore) GetAnalytics(ctx context.Context) *models.AnalyticsData {
	s.mu.Lock()
	missing := s.analytics == nil && !s.loading
	s.mu.Unlock()

	if missing {
		s.FetchAnalytics(ctx)
	}
	return s.Analytics()
}

// SetTimeRange switches the reporting window. A change invalidates the
// cached summary and triggers a refetch; setting the same range is a no-op.
func (s *AnalyticsStore) SetTimeRange(ctx context.Context, timeRange models.TimeRange) {
	s.mu.Lock()
	if s.timeRange == timeRange {
		s.mu.Unlock()
		return
	}
	s.timeRange = timeRange
	s.analytics = nil
	s.lastFetched = 0
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.FetchAnalytics(ctx)
}

// Reset restores every field to its initial value and clears the persisted
// snapshot.
func (s *AnalyticsStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = nil
	s.timeRange = models.RangeMonth
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
	clearSnapshot(ctx, s.deps.KV, analyticsPersist)
}
