package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkalil/prepdash/internal/api"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/store"
	"github.com/mkalil/prepdash/internal/testutil"
	"github.com/mkalil/prepdash/internal/testutil/mocks"
)

type TestTimeStoreSuite struct {
	suite.Suite
	gw   *mocks.MockGateway
	kv   *storage.Memory
	deps store.Deps
}

func (s *TestTimeStoreSuite) SetupTest() {
	s.gw = new(mocks.MockGateway)
	s.kv = storage.NewMemory()
	s.deps = store.Deps{Gateway: s.gw, KV: s.kv, Config: testutil.TestConfig()}
}

func (s *TestTimeStoreSuite) expectSeries() {
	s.gw.On("Get", mock.Anything, api.EndpointAnalyticsTestTime, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*models.TestTimeResponse)
			*out = models.TestTimeResponse{
				TestTimeData: []models.TestTimePoint{
					{Date: "2026-08-25", TestTime: 6.5},
					{Date: "2026-08-26", TestTime: 5.0, ExamScore: "127"},
					{Date: "2026-08-27", TestTime: 4.2},
				},
				FullLengthScoreData: []models.FullLengthScorePoint{
					{Date: "2026-08-26", Score: 508},
				},
			}
		}).
		Return(nil)
}

func (s *TestTimeStoreSuite) TestFetchLoadsBothSeries() {
	ctx := context.Background()
	s.expectSeries()

	tt := store.NewTestTimeStore(s.deps)
	s.Assert().Equal(models.RangeLast30Days, tt.SelectedTimeRange(), "30 days is the default window")

	tt.FetchTestTimeData(ctx)

	s.Assert().Len(tt.TestTimeData(), 3)
	s.Assert().Len(tt.FullLengthScoreData(), 1)

	// Fresh data short-circuits the second call.
	tt.FetchTestTimeData(ctx)
	s.gw.AssertNumberOfCalls(s.T(), "Get", 1)
}

func (s *TestTimeStoreSuite) TestSelectPointIsExclusive() {
	ctx := context.Background()
	s.expectSeries()

	tt := store.NewTestTimeStore(s.deps)
	tt.FetchTestTimeData(ctx)

	tt.SelectTestTimePoint(ctx, "2026-08-26")
	for _, p := range tt.TestTimeData() {
		s.Assert().Equal(p.Date == "2026-08-26", p.IsSelected)
	}

	// Selecting another date moves the marker, it never accumulates.
	tt.SelectTestTimePoint(ctx, "2026-08-27")
	for _, p := range tt.TestTimeData() {
		s.Assert().Equal(p.Date == "2026-08-27", p.IsSelected)
	}
}

func (s *TestTimeStoreSuite) TestCustomDateRange() {
	ctx := context.Background()

	tt := store.NewTestTimeStore(s.deps)
	tt.SetSelectedTimeRange(ctx, models.RangeCustom)
	tt.SetCustomDateRange(ctx, "2026-08-01", "2026-08-28")

	s.Assert().Equal(models.RangeCustom, tt.SelectedTimeRange())
	s.Assert().Equal(models.CustomDateRange{StartDate: "2026-08-01", EndDate: "2026-08-28"}, tt.CustomDateRange())
}

func (s *TestTimeStoreSuite) TestRehydratesSeriesAndSelection() {
	ctx := context.Background()
	s.expectSeries()

	first := store.NewTestTimeStore(s.deps)
	first.FetchTestTimeData(ctx)
	first.SetSelectedTimeRange(ctx, models.RangeLast7Days)

	second := store.NewTestTimeStore(s.deps)
	s.Assert().Len(second.TestTimeData(), 3)
	s.Assert().Equal(models.RangeLast7Days, second.SelectedTimeRange())
}

func (s *TestTimeStoreSuite) TestReset() {
	ctx := context.Background()
	s.expectSeries()

	tt := store.NewTestTimeStore(s.deps)
	tt.FetchTestTimeData(ctx)
	tt.SetSelectedTimeRange(ctx, models.RangeLast90Days)

	tt.Reset(ctx)

	s.Assert().Empty(tt.TestTimeData())
	s.Assert().Equal(models.RangeLast30Days, tt.SelectedTimeRange())
	s.Assert().Zero(tt.LastFetched())

	// The durable snapshot is removed, not just emptied.
	_, ok, err := s.kv.Get(ctx, storage.TestTimeStorageKey)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func TestTestTimeStoreSuite(t *testing.T) {
	suite.Run(t, new(TestTimeStoreSuite))
}
