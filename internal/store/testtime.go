package store

import (
	"context"
	"slices"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/mockdata"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
)

var testTimePersist = persistSpec{name: storage.TestTimeStorageKey, version: 1}

// TestTimeStore owns the test-time chart series: remaining-time points,
// full-length scores, and the selected date window.
type TestTimeStore struct {
	apiState
	deps Deps
	log  *logger.Logger

	testTimeData        []models.TestTimePoint
	fullLengthScoreData []models.FullLengthScorePoint
	selectedRange       models.TestTimeRange
	customRange         models.CustomDateRange
}

type persistedTestTimeState struct {
	TestTimeData        []models.TestTimePoint        `json:"testTimeData"`
	FullLengthScoreData []models.FullLengthScorePoint `json:"fullLengthScoreData"`
	SelectedRange       models.TestTimeRange          `json:"selectedTimeRange"`
	CustomRange         models.CustomDateRange        `json:"customDateRange"`
	LastFetched         int64                         `json:"lastFetched,omitempty"`
}

// NewTestTimeStore builds the store and rehydrates its persisted projection.
func NewTestTimeStore(deps Deps) *TestTimeStore {
	s := &TestTimeStore{
		deps:          deps,
		log:           logger.Default().WithPrefix("test_time_store"),
		selectedRange: models.RangeLast30Days,
	}

	var snap persistedTestTimeState
	if rehydrate(context.Background(), deps.KV, testTimePersist, &snap) {
		s.testTimeData = snap.TestTimeData
		s.fullLengthScoreData = snap.FullLengthScoreData
		if snap.SelectedRange != "" {
			s.selectedRange = snap.SelectedRange
		}
		s.customRange = snap.CustomRange
		s.lastFetched = snap.LastFetched
	}
	return s
}

// TestTimeData returns a copy of the test-time series.
func (s *TestTimeStore) TestTimeData() []models.TestTimePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.testTimeData)
}

// FullLengthScoreData returns a copy of the full-length score series.
func (s *TestTimeStore) FullLengthScoreData() []models.FullLengthScorePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.fullLengthScoreData)
}

// SelectedTimeRange returns the selected window.
func (s *TestTimeStore) SelectedTimeRange() models.TestTimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedRange
}

// CustomDateRange returns the custom window boundaries.
func (s *TestTimeStore) CustomDateRange() models.CustomDateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customRange
}

func (s *TestTimeStore) persistLocked(ctx context.Context) {
	persist(ctx, s.deps.KV, testTimePersist, persistedTestTimeState{
		TestTimeData:        s.testTimeData,
		FullLengthScoreData: s.fullLengthScoreData,
		SelectedRange:       s.selectedRange,
		CustomRange:         s.customRange,
		LastFetched:         s.lastFetched,
	})
}

// FetchTestTimeData loads both series, honoring the in-flight guard and the
// staleness window.
func (s *TestTimeStore) FetchTestTimeData(ctx context.Context) {
	s.mu.Lock()
	hasData := len(s.testTimeData) > 0
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var resp models.TestTimeResponse
	err := s.deps.Gateway.Get(ctx, api.EndpointAnalyticsTestTime, &resp)
	if err != nil {
		s.log.Error("failed to fetch test time data: %v", err)
		if s.deps.Config.MockFallback {
			s.finishFallback(func() {
				mock := mockdata.TestTime()
				s.testTimeData = mock.TestTimeData
				s.fullLengthScoreData = mock.FullLengthScoreData
				s.persistLocked(ctx)
			}, apperrors.Message(err, err.Error()))
			return
		}
		s.finishError(apperrors.Message(err, "Failed to fetch test time data"))
		return
	}

	s.finishSuccess(func() {
		s.testTimeData = resp.TestTimeData
		s.fullLengthScoreData = resp.FullLengthScoreData
		s.persistLocked(ctx)
	})
}

// SetSelectedTimeRange switches the chart window.
func (s *TestTimeStore) SetSelectedTimeRange(ctx context.Context, r models.TestTimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedRange = r
	s.persistLocked(ctx)
}

// SetCustomDateRange records the custom window boundaries.
func (s *TestTimeStore) SetCustomDateRange(ctx context.Context, startDate, endDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customRange = models.CustomDateRange{StartDate: startDate, EndDate: endDate}
	s.persistLocked(ctx)
}

// SelectTestTimePoint marks the point at date as selected and clears the
// marker everywhere else.
func (s *TestTimeStore) SelectTestTimePoint(ctx context.Context, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.testTimeData {
		s.testTimeData[i].IsSelected = s.testTimeData[i].Date == date
	}
	s.persistLocked(ctx)
}

// Reset restores every field to its initial value and clears the persisted
// snapshot.
func (s *TestTimeStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testTimeData = nil
	s.fullLengthScoreData = nil
	s.selectedRange = models.RangeLast30Days
	s.customRange = models.CustomDateRange{}
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
	clearSnapshot(ctx, s.deps.KV, testTimePersist)
}
