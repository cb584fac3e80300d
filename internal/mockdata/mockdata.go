// Package mockdata holds the canned placeholder payloads used by the
// development fallback path and by tests. Values mirror what the dashboard
// renders before a backend exists.
package mockdata

import "github.com/mkalil/prepdash/internal/models"

// User is the placeholder account.
func User() models.User {
	return models.User{
		ID:     "1",
		Name:   "John Doe",
		Email:  "john@example.com",
		Avatar: "/avatars/default.png",
		Role:   models.RoleStudent,
	}
}

// Courses returns the placeholder course catalog.
func Courses() []models.Course {
	return []models.Course{
		{
			ID:               "1",
			Title:            "Foundations of CARS Analysis",
			Description:      "Learn to identify key elements and structures in complex passages",
			Progress:         100,
			CompletedLessons: 5,
			TotalLessons:     5,
			EstimatedTime:    "3 hours",
			Category:         "MCAT CARS",
			Color:            models.ColorBlue,
		},
		{
			ID:               "2",
			Title:            "Advanced Reading Strategies",
			Description:      "Master efficient reading techniques for complex humanities passages",
			Progress:         60,
			CompletedLessons: 3,
			TotalLessons:     5,
			EstimatedTime:    "4 hours",
			Category:         "MCAT CARS",
			Color:            models.ColorGreen,
		},
		{
			ID:               "3",
			Title:            "Question Type Analysis",
			Description:      "Understand the different question types and strategies for each",
			Progress:         0,
			CompletedLessons: 0,
			TotalLessons:     6,
			EstimatedTime:    "4.5 hours",
			Category:         "MCAT CARS",
			Color:            models.ColorPurple,
		},
		{
			ID:               "4",
			Title:            "Timing and Efficiency",
			Description:      "Develop strategies to maximize your score within time constraints",
			Progress:         0,
			CompletedLessons: 0,
			TotalLessons:     5,
			EstimatedTime:    "3.5 hours",
			Category:         "MCAT CARS",
			Color:            models.ColorYellow,
		},
	}
}

// Analytics returns the placeholder dashboard summary.
func Analytics() models.AnalyticsData {
	return models.AnalyticsData{
		CourseCompletion: models.CourseCompletion{
			PercentageCompleted: 65,
			LessonsCompleted:    24,
			TotalLessons:        37,
			LessonsLeft:         13,
		},
		PassagesProgress: models.PassagesProgress{
			PercentageCompleted: 48,
			PassagesCompleted:   12,
			TotalPassages:       25,
			PassagesLeft:        13,
		},
		QuestionAccuracy: models.QuestionAccuracy{
			PercentageCorrect: 72,
			CorrectAnswers:    144,
			IncorrectAnswers:  56,
			IncompleteAnswers: 20,
			TotalQuestions:    220,
		},
	}
}

// TestTime returns the placeholder test-time and full-length score series.
func TestTime() models.TestTimeResponse {
	return models.TestTimeResponse{
		TestTimeData: []models.TestTimePoint{
			{Date: "2023-12-15", TestTime: 12.2},
			{Date: "2023-12-22", TestTime: 11.5},
			{Date: "2023-12-29", TestTime: 10.8},
			{Date: "2024-01-03", TestTime: 10.5},
			{Date: "2024-01-09", TestTime: 7.9},
			{Date: "2024-01-15", TestTime: 6.5},
			{Date: "2024-01-20", TestTime: 5.7, ExamScore: "505/600", IsSelected: true},
			{Date: "2024-01-25", TestTime: 3.8},
			{Date: "2024-01-29", TestTime: 2.4},
			{Date: "2024-02-05", TestTime: 1.9},
			{Date: "2024-02-12", TestTime: 1.7},
			{Date: "2024-02-19", TestTime: 1.5},
			{Date: "2024-02-26", TestTime: 1.3},
		},
		FullLengthScoreData: []models.FullLengthScorePoint{
			{Date: "2023-12-15", Score: 118},
			{Date: "2023-12-29", Score: 120},
			{Date: "2024-01-12", Score: 123},
			{Date: "2024-01-26", Score: 126},
			{Date: "2024-02-02", Score: 128, IsSelected: true},
			{Date: "2024-02-16", Score: 130},
			{Date: "2024-03-01", Score: 132},
		},
	}
}

// CarsAnalytics returns the placeholder CARS bundle.
func CarsAnalytics() models.CarsAnalyticsBundle {
	return models.CarsAnalyticsBundle{
		PerformanceData: []models.PerformancePoint{
			{Name: "Jan", Score: 68, AvgTime: 10.2},
			{Name: "Feb", Score: 72, AvgTime: 9.8},
			{Name: "Mar", Score: 75, AvgTime: 9.1},
			{Name: "Apr", Score: 79, AvgTime: 8.3},
			{Name: "May", Score: 82, AvgTime: 7.2},
			{Name: "Jun", Score: 84, AvgTime: 5.9},
			{Name: "Jul", Score: 87, AvgTime: 4.1},
		},
		FullLengthScoresData: []models.FullLengthScore{
			{Name: "FL 1", Chem: 129, Cars: 128, Bio: 130, Psych: 131},
			{Name: "FL 2", Chem: 130, Cars: 129, Bio: 131, Psych: 132},
			{Name: "FL 3", Chem: 131, Cars: 131, Bio: 132, Psych: 132},
		},
		DistractorAnalysisData: []models.DistractorPoint{
			{Date: "Jan 1", CorrectAnswer: 50, CloseDistractor: 30, UnrelatedDistractor: 15, OppositeDistractor: 5},
			{Date: "Feb 1", CorrectAnswer: 60, CloseDistractor: 22, UnrelatedDistractor: 13, OppositeDistractor: 5},
			{Date: "Mar 1", CorrectAnswer: 70, CloseDistractor: 18, UnrelatedDistractor: 8, OppositeDistractor: 4},
		},
		SubjectPerformanceData: []models.SubjectPerformancePoint{
			{Date: "Jan", Humanities: 72, SocialSciences: 68, NaturalSciences: 75, Philosophy: 62},
			{Date: "Feb", Humanities: 74, SocialSciences: 70, NaturalSciences: 78, Philosophy: 65},
			{Date: "Mar", Humanities: 76, SocialSciences: 73, NaturalSciences: 80, Philosophy: 68},
		},
		SkillsData: []models.SkillPoint{
			{Month: "Jan", CriticalAnalysis: 65, ReadingComprehension: 70},
			{Month: "Feb", CriticalAnalysis: 70, ReadingComprehension: 74},
			{Month: "Mar", CriticalAnalysis: 76, ReadingComprehension: 79},
		},
		PassageTypePerformanceData: []models.PassageTypePoint{
			{Name: "Humanities", Score: 82},
			{Name: "Social Sciences", Score: 75},
			{Name: "Natural Sciences", Score: 68},
			{Name: "Philosophy", Score: 71},
		},
		QuestionTypeData: []models.QuestionTypePoint{
			{Name: "Main Idea", Value: 85},
			{Name: "Detail", Value: 78},
			{Name: "Inference", Value: 70},
			{Name: "Application", Value: 65},
		},
		StudyTimeData: []models.StudyTimePoint{
			{Name: "Practice Passages", Value: 45},
			{Name: "Review", Value: 25},
			{Name: "Full Lengths", Value: 20},
			{Name: "Strategy", Value: 10},
		},
		PracticeSessionsData: []models.PracticeSessionPoint{
			{Date: "Week 1", Sessions: 4, AvgScore: 68},
			{Date: "Week 2", Sessions: 5, AvgScore: 72},
			{Date: "Week 3", Sessions: 6, AvgScore: 77},
		},
		SkillsRadarData: []models.SkillRadarPoint{
			{Subject: "Comprehension", Score: 80, FullMark: 100},
			{Subject: "Analysis", Score: 74, FullMark: 100},
			{Subject: "Reasoning", Score: 70, FullMark: 100},
			{Subject: "Timing", Score: 62, FullMark: 100},
		},
		PassageCompletionData: []models.PassageCompletionPoint{
			{Name: "Humanities", Completion: 68, AvgTime: 9.4},
			{Name: "Social Sciences", Completion: 55, AvgTime: 10.1},
			{Name: "Natural Sciences", Completion: 42, AvgTime: 10.9},
		},
		QuestionBankData: models.QuestionBankData{
			CorrectQuestions:       144,
			IncorrectAnswers:       56,
			IncompleteQuestions:    20,
			SeenQuestions:          220,
			UnseenQuestions:        780,
			TotalQuestions:         1000,
			TotalPossibleQuestions: 1000,
		},
	}
}

// CalendarEvents returns placeholder calendar entries.
func CalendarEvents() []models.CalendarEvent {
	return []models.CalendarEvent{
		{ID: "1", Title: "Full Length 4", StartDate: "2024-03-09", AllDay: true, Type: models.EventExam, Priority: models.PriorityHigh},
		{ID: "2", Title: "CARS practice block", StartDate: "2024-03-11", Type: models.EventStudy, Priority: models.PriorityMedium},
		{ID: "3", Title: "Question Type Analysis: lesson 3", StartDate: "2024-03-12", Type: models.EventLesson},
	}
}
