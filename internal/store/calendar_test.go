package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/store"
	"github.com/mkalil/prepdash/internal/testutil"
	"github.com/mkalil/prepdash/internal/testutil/mocks"
)

type CalendarStoreSuite struct {
	suite.Suite
	gw   *mocks.MockGateway
	deps store.Deps
}

func (s *CalendarStoreSuite) SetupTest() {
	s.gw = new(mocks.MockGateway)
	s.deps = store.Deps{Gateway: s.gw, KV: storage.NewMemory(), Config: testutil.TestConfig()}
}

func (s *CalendarStoreSuite) TestFetchEvents() {
	ctx := context.Background()
	s.gw.On("Get", mock.Anything, api.EndpointCalendarEvents, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.CalendarEvent)
			*out = []models.CalendarEvent{
				{ID: "e1", Title: "Full-length practice exam", StartDate: "2026-09-05", Type: models.EventExam},
			}
		}).
		Return(nil)

	cal := store.NewCalendarStore(s.deps)
	cal.FetchEvents(ctx)

	s.Require().Len(cal.Events(), 1)
	s.Assert().Equal("e1", cal.Events()[0].ID)
	s.Assert().Empty(cal.Error())
}

func (s *CalendarStoreSuite) TestAddEventAppendsServerVersion() {
	ctx := context.Background()
	s.gw.On("Post", mock.Anything, api.EndpointCalendarEvents, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			submitted := args.Get(2).(models.CalendarEvent)
			out := args.Get(3).(*models.CalendarEvent)
			*out = submitted
			out.ID = "server-1"
		}).
		Return(nil)

	cal := store.NewCalendarStore(s.deps)
	cal.AddEvent(ctx, models.CalendarEvent{Title: "CARS timing drill", StartDate: "2026-09-01", Type: models.EventStudy})

	s.Require().Len(cal.Events(), 1)
	s.Assert().Equal("server-1", cal.Events()[0].ID, "the server-assigned id is authoritative")
	s.Assert().Equal("CARS timing drill", cal.Events()[0].Title)
}

func (s *CalendarStoreSuite) TestAddEventFailureLeavesListUntouched() {
	ctx := context.Background()
	s.gw.On("Post", mock.Anything, api.EndpointCalendarEvents, mock.Anything, mock.Anything).
		Return(apperrors.NewServerError(500, "calendar service down"))

	cal := store.NewCalendarStore(s.deps)
	cal.AddEvent(ctx, models.CalendarEvent{Title: "Review session"})

	s.Assert().Empty(cal.Events())
	s.Assert().Equal("calendar service down", cal.Error())
}

func (s *CalendarStoreSuite) TestDeleteEventDropsLocalCopy() {
	ctx := context.Background()
	s.gw.On("Get", mock.Anything, api.EndpointCalendarEvents, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.CalendarEvent)
			*out = []models.CalendarEvent{
				{ID: "e1", Title: "Full-length practice exam", StartDate: "2026-09-05", Type: models.EventExam},
				{ID: "e2", Title: "Review session", StartDate: "2026-09-06", Type: models.EventStudy},
			}
		}).
		Return(nil)
	s.gw.On("Delete", mock.Anything, api.EndpointCalendarEvent("e1"), mock.Anything).
		Return(nil)

	cal := store.NewCalendarStore(s.deps)
	cal.FetchEvents(ctx)
	s.Require().Len(cal.Events(), 2)

	cal.DeleteEvent(ctx, "e1")

	s.Require().Len(cal.Events(), 1)
	s.Assert().Equal("e2", cal.Events()[0].ID)
	s.Assert().Empty(cal.Error())
}

func (s *CalendarStoreSuite) TestDeleteEventFailureKeepsList() {
	ctx := context.Background()
	s.gw.On("Get", mock.Anything, api.EndpointCalendarEvents, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.CalendarEvent)
			*out = []models.CalendarEvent{
				{ID: "e1", Title: "Full-length practice exam", StartDate: "2026-09-05", Type: models.EventExam},
			}
		}).
		Return(nil)
	s.gw.On("Delete", mock.Anything, api.EndpointCalendarEvent("e1"), mock.Anything).
		Return(apperrors.NewServerError(500, "calendar service down"))

	cal := store.NewCalendarStore(s.deps)
	cal.FetchEvents(ctx)

	cal.DeleteEvent(ctx, "e1")

	s.Require().Len(cal.Events(), 1)
	s.Assert().Equal("calendar service down", cal.Error())
}

func (s *CalendarStoreSuite) TestViewAndDateSelection() {
	cal := store.NewCalendarStore(s.deps)
	s.Assert().Equal(store.ViewMonth, cal.View())

	cal.SetView(store.ViewWeek)
	cal.SetSelectedDate("2026-09-05")

	s.Assert().Equal(store.ViewWeek, cal.View())
	s.Assert().Equal("2026-09-05", cal.SelectedDate())

	cal.Reset(context.Background())
	s.Assert().Equal(store.ViewMonth, cal.View())
	s.Assert().Empty(cal.SelectedDate())
}

func TestCalendarStoreSuite(t *testing.T) {
	suite.Run(t, new(CalendarStoreSuite))
}
