package models

// TestTimeRange is a predefined or custom window for the test-time charts.
type TestTimeRange string

const (
	RangeLast7Days  TestTimeRange = "Last 7 days"
	RangeLast14Days TestTimeRange = "Last 14 days"
	RangeLast30Days TestTimeRange = "Last 30 days"
	RangeLast60Days TestTimeRange = "Last 60 days"
	RangeLast90Days TestTimeRange = "Last 90 days"
	RangeCustom     TestTimeRange = "Custom range"
)

// TestTimePoint is one dated measurement of remaining test time, optionally
// annotated with the exam score achieved that day.
type TestTimePoint struct {
	Date       string  `json:"date"`
	TestTime   float64 `json:"testTime"`
	ExamScore  string  `json:"examScore,omitempty"`
	IsSelected bool    `json:"isSelected,omitempty"`
}

type FullLengthScorePoint struct {
	Date       string `json:"date"`
	Score      int    `json:"score"`
	IsSelected bool   `json:"isSelected,omitempty"`
}

type CustomDateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TestTimeResponse is the payload of the test-time analytics endpoint.
type TestTimeResponse struct {
	TestTimeData        []TestTimePoint        `json:"testTimeData"`
	FullLengthScoreData []FullLengthScorePoint `json:"fullLengthScoreData"`
}
