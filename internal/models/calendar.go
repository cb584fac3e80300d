package models

// EventType classifies a calendar entry.
type EventType string

const (
	EventExam    EventType = "exam"
	EventStudy   EventType = "study"
	EventLesson  EventType = "lesson"
	EventMeeting EventType = "meeting"
	EventOther   EventType = "other"
)

// EventPriority orders events on crowded days.
type EventPriority string

const (
	PriorityLow    EventPriority = "low"
	PriorityMedium EventPriority = "medium"
	PriorityHigh   EventPriority = "high"
)

type CalendarEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	AllDay      bool          `json:"allDay,omitempty"`
	Type        EventType     `json:"type"`
	Priority    EventPriority `json:"priority,omitempty"`
	Completed   bool          `json:"completed,omitempty"`
}
