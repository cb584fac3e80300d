package store

import (
	"context"
	"slices"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/models"
)

// CalendarView selects how the calendar page renders its events.
type CalendarView string

const (
	ViewDay   CalendarView = "day"
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

// CalendarStore owns the event list and the calendar view selection. It is
// deliberately not persisted: events are cheap to refetch and go stale fast.
type CalendarStore struct {
	apiState
	deps Deps
	log  *logger.Logger

	events       []models.CalendarEvent
	selectedDate string
	view         CalendarView
}

// NewCalendarStore builds the store.
func NewCalendarStore(deps Deps) *CalendarStore {
	return &CalendarStore{
		deps: deps,
		log:  logger.Default().WithPrefix("calendar_store"),
		view: ViewMonth,
	}
}

// Events returns a copy of the cached events.
func (s *CalendarStore) Events() []models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// SelectedDate returns the selected date, empty when none.
func (s *CalendarStore) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// View returns the active calendar view.
func (s *CalendarStore) View() CalendarView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// FetchEvents loads the event list, honoring the in-flight guard and the
// staleness window.
func (s *CalendarStore) FetchEvents(ctx context.Context) {
	s.mu.Lock()
	hasData := len(s.events) > 0
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var events []models.CalendarEvent
	err := s.deps.Gateway.Get(ctx, api.EndpointCalendarEvents, &events)
	if err != nil {
		s.log.Error("failed to fetch calendar events: %v", err)
		s.finishError(apperrors.Message(err, "Failed to fetch calendar events"))
		return
	}

	s.finishSuccess(func() {
		s.events = events
	})
}

// AddEvent creates the event server-side and appends the authoritative
// version to the local list.
func (s *CalendarStore) AddEvent(ctx context.Context, event models.CalendarEvent) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	var created models.CalendarEvent
	if err := s.deps.Gateway.Post(ctx, api.EndpointCalendarEvents, event, &created); err != nil {
		s.log.Error("failed to add calendar event: %v", err)
		s.finishError(apperrors.Message(err, "Failed to add calendar event"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, created)
	s.loading = false
}

// DeleteEvent removes the event server-side, then drops it from the local
// list.
func (s *CalendarStore) DeleteEvent(ctx context.Context, eventID string) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.deps.Gateway.Delete(ctx, api.EndpointCalendarEvent(eventID), nil); err != nil {
		s.log.Error("failed to delete calendar event %s: %v", eventID, err)
		s.finishError(apperrors.Message(err, "Failed to delete calendar event"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = slices.DeleteFunc(s.events, func(e models.CalendarEvent) bool { return e.ID == eventID })
	s.loading = false
}

// SetSelectedDate records the focused date.
func (s *CalendarStore) SetSelectedDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
}

// SetView switches the calendar rendering mode.
func (s *CalendarStore) SetView(view CalendarView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// Reset restores every field to its initial value.
func (s *CalendarStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.selectedDate = ""
	s.view = ViewMonth
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
}
