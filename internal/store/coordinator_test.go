package store_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkalil/prepdash/internal/api"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/store"
	"github.com/mkalil/prepdash/internal/testutil"
	"github.com/mkalil/prepdash/internal/testutil/mocks"
)

type CoordinatorSuite struct {
	suite.Suite
	gw   *mocks.MockGateway
	kv   *storage.Memory
	deps store.Deps

	verifyOK  bool
	courses   atomic.Int32
	analytics atomic.Int32
	testTime  atomic.Int32
	cars      atomic.Int32
}

func (s *CoordinatorSuite) SetupTest() {
	s.gw = new(mocks.MockGateway)
	s.kv = storage.NewMemory()
	s.deps = store.Deps{Gateway: s.gw, KV: s.kv, Config: testutil.TestConfig()}

	s.verifyOK = true
	s.courses.Store(0)
	s.analytics.Store(0)
	s.testTime.Store(0)
	s.cars.Store(0)

	s.gw.On("Get", mock.Anything, api.EndpointVerify, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*models.VerifyResponse)
			if s.verifyOK {
				*out = models.VerifyResponse{
					Authenticated: true,
					User:          &models.User{ID: "u1", Name: "Mohamad", Email: "mohamad@example.com", Role: models.RoleStudent},
				}
			} else {
				*out = models.VerifyResponse{Authenticated: false}
			}
		}).
		Return(nil)

	s.gw.On("Get", mock.Anything, api.EndpointCourses, mock.Anything).
		Run(func(args mock.Arguments) {
			s.courses.Add(1)
			out := args.Get(2).(*[]models.Course)
			*out = []models.Course{{ID: "course-1", Title: "CARS Strategy", TotalLessons: 2}}
		}).
		Return(nil)

	s.gw.On("Get", mock.Anything, api.EndpointAnalyticsSummaryFor("month"), mock.Anything).
		Run(func(args mock.Arguments) {
			s.analytics.Add(1)
			out := args.Get(2).(*models.AnalyticsData)
			*out = models.AnalyticsData{CourseCompletion: models.CourseCompletion{PercentageCompleted: 40}}
		}).
		Return(nil)

	s.gw.On("Get", mock.Anything, api.EndpointAnalyticsTestTime, mock.Anything).
		Run(func(args mock.Arguments) {
			s.testTime.Add(1)
			out := args.Get(2).(*models.TestTimeResponse)
			*out = models.TestTimeResponse{TestTimeData: []models.TestTimePoint{{Date: "2026-08-27", TestTime: 5}}}
		}).
		Return(nil)

	s.gw.On("Get", mock.Anything, api.EndpointProgressChart+"?timeRange=month", mock.Anything).
		Run(func(args mock.Arguments) {
			s.cars.Add(1)
			out := args.Get(2).(*models.CarsAnalyticsBundle)
			*out = models.CarsAnalyticsBundle{QuestionBankData: models.QuestionBankData{TotalQuestions: 100}}
		}).
		Return(nil)
}

func (s *CoordinatorSuite) TestStartRefreshesEverythingWhenCold() {
	stores := store.NewStores(s.deps)
	coord := store.NewCoordinator(s.deps, stores)

	coord.Start(context.Background())
	defer coord.Stop()

	s.Assert().True(stores.Users.IsAuthenticated())
	s.Assert().EqualValues(1, s.courses.Load())
	s.Assert().EqualValues(1, s.analytics.Load())
	s.Assert().EqualValues(1, s.testTime.Load())
	s.Assert().EqualValues(1, s.cars.Load())
}

func (s *CoordinatorSuite) TestStartSkipsFreshStores() {
	ctx := context.Background()
	stores := store.NewStores(s.deps)

	// Courses were fetched moments ago; the other stores are cold.
	stores.Courses.FetchCourses(ctx)
	s.Require().EqualValues(1, s.courses.Load())

	coord := store.NewCoordinator(s.deps, stores)
	coord.Start(ctx)
	defer coord.Stop()

	s.Assert().EqualValues(1, s.courses.Load(), "fresh course cache must not be refetched")
	s.Assert().EqualValues(1, s.analytics.Load())
	s.Assert().EqualValues(1, s.testTime.Load())
	s.Assert().EqualValues(1, s.cars.Load())
}

func (s *CoordinatorSuite) TestStartSeedsUserWhenVerificationFails() {
	s.verifyOK = false

	stores := store.NewStores(s.deps)
	coord := store.NewCoordinator(s.deps, stores,
		store.WithSeedUser(models.User{ID: "seed", Name: "Seed", Email: "seed@example.com", Role: models.RoleStudent}))

	coord.Start(context.Background())
	defer coord.Stop()

	s.Assert().False(stores.Users.IsAuthenticated())
	s.Require().NotNil(stores.Users.User())
	s.Assert().Equal("seed", stores.Users.User().ID)

	// An unverified session never triggers data refreshes.
	s.Assert().EqualValues(0, s.courses.Load())
	s.Assert().EqualValues(0, s.analytics.Load())
}

func (s *CoordinatorSuite) TestExternalChangeRoutesToOwningStore() {
	s.verifyOK = false

	stores := store.NewStores(s.deps)
	coord := store.NewCoordinator(s.deps, stores)
	coord.Start(context.Background())
	defer coord.Stop()

	s.Require().EqualValues(0, s.analytics.Load())

	// A foreign write to the analytics key re-fetches analytics, and only
	// analytics.
	s.kv.NotifyExternal(storage.AnalyticsStorageKey)
	s.Assert().EqualValues(1, s.analytics.Load())
	s.Assert().EqualValues(0, s.courses.Load())
	s.Assert().EqualValues(0, s.testTime.Load())

	s.kv.NotifyExternal(storage.CourseStorageKey)
	s.Assert().EqualValues(1, s.courses.Load())

	// Keys nobody owns are ignored.
	s.kv.NotifyExternal("some-other-app-key")
	s.Assert().EqualValues(1, s.analytics.Load())
	s.Assert().EqualValues(1, s.courses.Load())
}

func (s *CoordinatorSuite) TestExternalTokenChangeRechecksAuth() {
	s.verifyOK = false

	stores := store.NewStores(s.deps)
	coord := store.NewCoordinator(s.deps, stores)
	coord.Start(context.Background())
	defer coord.Stop()
	s.Require().False(stores.Users.IsAuthenticated())

	// Another process signed in and wrote the token.
	s.verifyOK = true
	s.kv.NotifyExternal(storage.TokenKey)

	s.Assert().True(stores.Users.IsAuthenticated())
}

func (s *CoordinatorSuite) TestStopDetachesSubscription() {
	s.verifyOK = false

	stores := store.NewStores(s.deps)
	coord := store.NewCoordinator(s.deps, stores)
	coord.Start(context.Background())
	coord.Stop()

	s.kv.NotifyExternal(storage.AnalyticsStorageKey)
	time.Sleep(10 * time.Millisecond)
	s.Assert().EqualValues(0, s.analytics.Load())
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}
