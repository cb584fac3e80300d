package models

// TimeRange selects the reporting window for analytics queries.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// AnalyticsData is the dashboard summary: three fixed sub-reports.
type AnalyticsData struct {
	CourseCompletion CourseCompletion `json:"courseCompletion"`
	PassagesProgress PassagesProgress `json:"passagesProgress"`
	QuestionAccuracy QuestionAccuracy `json:"questionAccuracy"`
}

type CourseCompletion struct {
	PercentageCompleted int `json:"percentageCompleted"`
	LessonsCompleted    int `json:"lessonsCompleted"`
	TotalLessons        int `json:"totalLessons"`
	LessonsLeft         int `json:"lessonsLeft"`
}

type PassagesProgress struct {
	PercentageCompleted int `json:"percentageCompleted"`
	PassagesCompleted   int `json:"passagesCompleted"`
	TotalPassages       int `json:"totalPassages"`
	PassagesLeft        int `json:"passagesLeft"`
}

type QuestionAccuracy struct {
	PercentageCorrect int `json:"percentageCorrect"`
	CorrectAnswers    int `json:"correctAnswers"`
	IncorrectAnswers  int `json:"incorrectAnswers"`
	IncompleteAnswers int `json:"incompleteAnswers"`
	TotalQuestions    int `json:"totalQuestions"`
}
