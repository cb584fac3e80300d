package models

// The CARS analytics bundle: chart-ready series for the critical analysis
// and reasoning dashboard. The whole bundle is fetched and replaced as one
// atomic cache unit keyed to a single time range.

type PerformancePoint struct {
	Name    string  `json:"name"`
	Score   int     `json:"score"`
	AvgTime float64 `json:"avgTime"`
}

type FullLengthScore struct {
	Name  string `json:"name"`
	Chem  int    `json:"chem"`
	Cars  int    `json:"cars"`
	Bio   int    `json:"bio"`
	Psych int    `json:"psych"`
}

type DistractorPoint struct {
	Date                string `json:"date"`
	CorrectAnswer       int    `json:"correctAnswer"`
	CloseDistractor     int    `json:"closeDistractor"`
	UnrelatedDistractor int    `json:"unrelatedDistractor"`
	OppositeDistractor  int    `json:"oppositeDistractor"`
}

type SubjectPerformancePoint struct {
	Date            string `json:"date"`
	Humanities      int    `json:"humanities"`
	SocialSciences  int    `json:"socialSciences"`
	NaturalSciences int    `json:"naturalSciences"`
	Philosophy      int    `json:"philosophy"`
}

type SkillPoint struct {
	Month                string `json:"month"`
	CriticalAnalysis     int    `json:"criticalAnalysis"`
	ReadingComprehension int    `json:"readingComprehension"`
}

type PassageTypePoint struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type QuestionTypePoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type StudyTimePoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type PracticeSessionPoint struct {
	Date     string  `json:"date"`
	Sessions int     `json:"sessions"`
	AvgScore float64 `json:"avgScore"`
}

type SkillRadarPoint struct {
	Subject  string `json:"subject"`
	Score    int    `json:"score"`
	FullMark int    `json:"fullMark"`
}

type PassageCompletionPoint struct {
	Name       string  `json:"name"`
	Completion int     `json:"completion"`
	AvgTime    float64 `json:"avgTime"`
}

type QuestionBankData struct {
	CorrectQuestions       int `json:"correctQuestions"`
	IncorrectAnswers       int `json:"incorrectAnswers"`
	IncompleteQuestions    int `json:"incompleteQuestions"`
	SeenQuestions          int `json:"seenQuestions"`
	UnseenQuestions        int `json:"unseenQuestions"`
	TotalQuestions         int `json:"totalQuestions"`
	TotalPossibleQuestions int `json:"totalPossibleQuestions"`
}

// CarsAnalyticsBundle groups every CARS chart series for one time range.
type CarsAnalyticsBundle struct {
	PerformanceData           []PerformancePoint       `json:"performanceData"`
	FullLengthScoresData      []FullLengthScore        `json:"fullLengthScoresData"`
	DistractorAnalysisData    []DistractorPoint        `json:"distractorAnalysisData"`
	SubjectPerformanceData    []SubjectPerformancePoint `json:"subjectPerformanceData"`
	SkillsData                []SkillPoint             `json:"skillsData"`
	PassageTypePerformanceData []PassageTypePoint      `json:"passageTypePerformanceData"`
	QuestionTypeData          []QuestionTypePoint      `json:"questionTypeData"`
	StudyTimeData             []StudyTimePoint         `json:"studyTimeData"`
	PracticeSessionsData      []PracticeSessionPoint   `json:"practiceSessionsData"`
	SkillsRadarData           []SkillRadarPoint        `json:"skillsRadarData"`
	PassageCompletionData     []PassageCompletionPoint `json:"passageCompletionData"`
	QuestionBankData          QuestionBankData         `json:"questionBankData"`
}
