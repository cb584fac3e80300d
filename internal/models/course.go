package models

import "math"

// LessonType classifies the content of a lesson.
type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonReading  LessonType = "reading"
	LessonQuiz     LessonType = "quiz"
	LessonPractice LessonType = "practice"
)

// ColorTag is the display color associated with a course card.
type ColorTag string

const (
	ColorBlue   ColorTag = "blue"
	ColorGreen  ColorTag = "green"
	ColorRed    ColorTag = "red"
	ColorYellow ColorTag = "yellow"
	ColorPurple ColorTag = "purple"
)

type Course struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category,omitempty"`
	Progress         int      `json:"progress"`
	CompletedLessons int      `json:"completedLessons"`
	TotalLessons     int      `json:"totalLessons"`
	EstimatedTime    string   `json:"estimatedTime,omitempty"`
	Color            ColorTag `json:"color,omitempty"`
	Modules          []Module `json:"modules,omitempty"`
}

type Module struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Lessons          []Lesson `json:"lessons"`
	CompletedLessons int      `json:"completedLessons"`
	TotalLessons     int      `json:"totalLessons"`
	EstimatedTime    string   `json:"estimatedTime,omitempty"`
}

type Lesson struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      LessonType `json:"type"`
	Duration  string     `json:"duration,omitempty"`
	Completed bool       `json:"completed"`
	Content   string     `json:"content,omitempty"`
}

// RecomputeProgress updates Progress from the lesson counters, rounding to
// the nearest whole percentage. A course with no lessons stays at 0.
func (c *Course) RecomputeProgress() {
	if c.TotalLessons <= 0 {
		c.Progress = 0
		return
	}
	c.Progress = int(math.Round(float64(c.CompletedLessons) / float64(c.TotalLessons) * 100))
}
