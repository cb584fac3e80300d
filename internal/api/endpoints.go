package api

import "fmt"

// Endpoint registry: logical operation names mapped to backend paths.
// Changing a route happens here and nowhere else.

// Auth endpoints.
const (
	EndpointLogin        = "/auth/login"
	EndpointRegister     = "/auth/register"
	EndpointLogout       = "/auth/logout"
	EndpointVerify       = "/auth/verify"
	EndpointRefreshToken = "/auth/refresh-token"
)

// User endpoints.
const (
	EndpointMe = "/users/me"
)

// Course endpoints.
const (
	EndpointCourses = "/courses"
)

func EndpointCourseDetails(id string) string {
	return fmt.Sprintf("/courses/%s", id)
}

func EndpointCourseEnroll(id string) string {
	return fmt.Sprintf("/courses/%s/enroll", id)
}

func EndpointCourseProgress(id string) string {
	return fmt.Sprintf("/courses/%s/progress", id)
}

func EndpointCourseLessons(id string) string {
	return fmt.Sprintf("/courses/%s/lessons", id)
}

// Analytics endpoints.
const (
	EndpointAnalyticsSummary  = "/analytics/summary"
	EndpointAnalyticsTestTime = "/analytics/test-time"
	EndpointProgressChart     = "/analytics/progress-chart"
)

func EndpointAnalyticsSummaryFor(timeRange string) string {
	return fmt.Sprintf("%s?timeRange=%s", EndpointAnalyticsSummary, timeRange)
}

// Calendar endpoints.
const (
	EndpointCalendarEvents = "/calendar/events"
)

func EndpointCalendarEvent(id string) string {
	return fmt.Sprintf("/calendar/events/%s", id)
}
