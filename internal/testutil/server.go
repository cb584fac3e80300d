package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mkalil/prepdash/internal/mockdata"
	"github.com/mkalil/prepdash/internal/models"
)

// FakeAPI is an in-process backend serving the endpoints the gateway
// consumes, with per-test control over auth outcomes and forced failures.
type FakeAPI struct {
	Server *httptest.Server

	// Token accepted by authenticated endpoints. Empty accepts anything.
	ValidToken string
	// ForceStatus, when non-zero, makes every endpoint return that status
	// with ForceBody as the response body.
	ForceStatus int
	ForceBody   string

	requests atomic.Int64
}

// NewFakeAPI starts a fake backend. It is closed automatically when the
// test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{}
	r := chi.NewRouter()

	r.Post("/auth/login", f.handleLogin)
	r.Post("/auth/register", f.handleRegister)
	r.Post("/auth/logout", f.authed(f.handleOK))
	r.Get("/auth/verify", f.handleVerify)
	r.Post("/auth/refresh-token", f.handleRefresh)

	r.Get("/users/me", f.authed(f.handleMe))
	r.Patch("/users/me", f.authed(f.handleUpdateMe))

	r.Get("/courses", f.authed(f.handleCourses))
	r.Post("/courses/{id}/enroll", f.authed(f.handleOK))
	r.Post("/courses/{id}/progress", f.authed(f.handleOK))
	r.Get("/courses/{id}/lessons", f.authed(f.handleLessons))

	r.Get("/analytics/summary", f.authed(f.handleAnalytics))
	r.Get("/analytics/test-time", f.authed(f.handleTestTime))
	r.Get("/analytics/progress-chart", f.authed(f.handleCars))

	r.Get("/calendar/events", f.authed(f.handleCalendar))
	r.Post("/calendar/events", f.authed(f.handleAddEvent))
	r.Delete("/calendar/events/{id}", f.authed(f.handleOK))

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the fake backend's base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Requests reports how many requests reached the backend, for asserting
// cache short-circuits.
func (f *FakeAPI) Requests() int64 {
	return f.requests.Load()
}

func (f *FakeAPI) intercept(w http.ResponseWriter) bool {
	f.requests.Add(1)
	if f.ForceStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.ForceStatus)
		w.Write([]byte(f.ForceBody))
		return true
	}
	return false
}

func (f *FakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.ForceStatus != 0 {
			f.intercept(w)
			return
		}
		if f.ValidToken != "" {
			header := r.Header.Get("Authorization")
			if header != "Bearer "+f.ValidToken {
				f.requests.Add(1)
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
				return
			}
		}
		next(w, r)
	}
}

func (f *FakeAPI) handleOK(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if f.intercept(w) {
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if strings.HasSuffix(creds.Email, "@invalid.test") {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Invalid credentials"})
		return
	}

	user := mockdata.User()
	user.Email = creds.Email
	writeJSON(w, http.StatusOK, models.AuthResponse{
		User:         &user,
		Token:        "token-" + creds.Email,
		RefreshToken: "refresh-" + creds.Email,
		ExpiresAt:    4102444800000,
	})
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	if f.intercept(w) {
		return
	}
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	user := mockdata.User()
	user.Name = in.Name
	user.Email = in.Email
	writeJSON(w, http.StatusOK, models.AuthResponse{
		User:         &user,
		Token:        "token-" + in.Email,
		RefreshToken: "refresh-" + in.Email,
		ExpiresAt:    4102444800000,
	})
}

func (f *FakeAPI) handleVerify(w http.ResponseWriter, r *http.Request) {
	if f.intercept(w) {
		return
	}
	header := r.Header.Get("Authorization")
	if f.ValidToken != "" && header != "Bearer "+f.ValidToken {
		writeJSON(w, http.StatusOK, models.VerifyResponse{Authenticated: false})
		return
	}
	user := mockdata.User()
	writeJSON(w, http.StatusOK, models.VerifyResponse{Authenticated: true, User: &user})
}

func (f *FakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if f.intercept(w) {
		return
	}
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.RefreshToken == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "missing refresh token"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{
		Token:        "rotated-token",
		RefreshToken: "rotated-refresh",
		ExpiresAt:    4102444800000,
	})
}

func (f *FakeAPI) handleMe(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	user := mockdata.User()
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeAPI) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	var patch models.UserPatch
	_ = json.NewDecoder(r.Body).Decode(&patch)
	user := patch.Apply(mockdata.User())
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeAPI) handleCourses(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, mockdata.Courses())
}

func (f *FakeAPI) handleLessons(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, []models.Module{
		{
			ID:    "module-1",
			Title: "Passage Mapping",
			Lessons: []models.Lesson{
				{ID: "lesson-1", Title: "Finding the Thesis", Type: models.LessonVideo},
				{ID: "lesson-2", Title: "Tone and Attitude", Type: models.LessonReading},
			},
			TotalLessons: 2,
		},
	})
}

func (f *FakeAPI) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, mockdata.Analytics())
}

func (f *FakeAPI) handleTestTime(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, mockdata.TestTime())
}

func (f *FakeAPI) handleCars(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, mockdata.CarsAnalytics())
}

func (f *FakeAPI) handleCalendar(w http.ResponseWriter, _ *http.Request) {
	f.requests.Add(1)
	writeJSON(w, http.StatusOK, mockdata.CalendarEvents())
}

func (f *FakeAPI) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	var event models.CalendarEvent
	_ = json.NewDecoder(r.Body).Decode(&event)
	event.ID = "created-1"
	writeJSON(w, http.StatusOK, event)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
