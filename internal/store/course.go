package store

import (
	"context"
	"slices"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/mockdata"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
)

var coursePersist = persistSpec{name: storage.CourseStorageKey, version: 1}

// CourseStore owns the course catalog, the enrollment list and the
// current course/module/lesson pointers.
type CourseStore struct {
	apiState
	deps Deps
	log  *logger.Logger

	courses       []models.Course
	enrolled      []string
	currentCourse *models.Course
	currentModule *models.Module
	currentLesson *models.Lesson
}

type persistedCourseState struct {
	Courses       []models.Course `json:"courses"`
	Enrolled      []string        `json:"enrolledCourses"`
	CurrentCourse *models.Course  `json:"currentCourse"`
	CurrentModule *models.Module  `json:"currentModule"`
	CurrentLesson *models.Lesson  `json:"currentLesson"`
	LastFetched   int64           `json:"lastFetched,omitempty"`
}

// NewCourseStore builds the store and rehydrates its persisted projection.
func NewCourseStore(deps Deps) *CourseStore {
	s := &CourseStore{
		deps: deps,
		log:  logger.Default().WithPrefix("course_store"),
	}

	var snap persistedCourseState
	if rehydrate(context.Background(), deps.KV, coursePersist, &snap) {
		s.courses = snap.Courses
		s.enrolled = snap.Enrolled
		s.currentCourse = snap.CurrentCourse
		s.currentModule = snap.CurrentModule
		s.currentLesson = snap.CurrentLesson
		s.lastFetched = snap.LastFetched
	}
	return s
}

// Courses returns a copy of the cached catalog.
func (s *CourseStore) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courses)
}

// EnrolledCourses returns the ids of enrolled courses.
func (s *CourseStore) EnrolledCourses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.enrolled)
}

// CurrentCourse returns a copy of the selected course, nil when none.
func (s *CourseStore) CurrentCourse() *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCourse == nil {
		return nil
	}
	c := *s.currentCourse
	return &c
}

// CurrentModule returns a copy of the selected module, nil when none.
func (s *CourseStore) CurrentModule() *models.Module {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentModule == nil {
		return nil
	}
	m := *s.currentModule
	return &m
}

// CurrentLesson returns a copy of the selected lesson, nil when none.
func (s *CourseStore) CurrentLesson() *models.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentLesson == nil {
		return nil
	}
	l := *s.currentLesson
	return &l
}

func (s *CourseStore) persistLocked(ctx context.Context) {
	persist(ctx, s.deps.KV, coursePersist, persistedCourseState{
		Courses:       s.courses,
		Enrolled:      s.enrolled,
		CurrentCourse: s.currentCourse,
		CurrentModule: s.currentModule,
		CurrentLesson: s.currentLesson,
		LastFetched:   s.lastFetched,
	})
}

// FetchCourses loads the catalog, honoring the in-flight guard and the
// staleness window. On failure the configured mock fallback may substitute
// placeholder data.
func (s *CourseStore) FetchCourses(ctx context.Context) {
	s.mu.Lock()
	hasData := len(s.courses) > 0
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var courses []models.Course
	err := s.deps.Gateway.Get(ctx, api.EndpointCourses, &courses)
	if err != nil {
		s.log.Error("failed to fetch courses: %v", err)
		if s.deps.Config.MockFallback {
			s.finishFallback(func() {
				s.courses = mockdata.Courses()
				s.persistLocked(ctx)
			}, apperrors.Message(err, err.Error()))
			return
		}
		s.finishError(apperrors.Message(err, "Failed to fetch courses"))
		return
	}

	s.finishSuccess(func() {
		s.courses = courses
		s.persistLocked(ctx)
	})
	s.log.Debug("fetched %d courses", len(courses))
}

// FetchCourse loads one course into the current-course pointer.
func (s *CourseStore) FetchCourse(ctx context.Context, courseID string) {
	s.setBusy()

	var course models.Course
	err := s.deps.Gateway.Get(ctx, api.EndpointCourseDetails(courseID), &course)
	if err != nil {
		s.log.Error("failed to fetch course %s: %v", courseID, err)
		s.finishError(apperrors.Message(err, "Failed to fetch course "+courseID))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentCourse = &course
	s.loading = false
	s.persistLocked(ctx)
}

// FetchModule resolves a module from the currently loaded course data. A
// missing id is a local not-found error, no network involved.
func (s *CourseStore) FetchModule(ctx context.Context, courseID, moduleID string) {
	s.setBusy()

	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.lookupCourseLocked(courseID)
	if course == nil {
		s.loading = false
		s.errMsg = apperrors.NewNotFoundError("course", courseID).Message
		return
	}

	for i := range course.Modules {
		if course.Modules[i].ID == moduleID {
			m := course.Modules[i]
			s.currentModule = &m
			s.loading = false
			s.persistLocked(ctx)
			return
		}
	}

	s.loading = false
	s.errMsg = apperrors.NewNotFoundError("module", moduleID).Message
}

// FetchLesson resolves a lesson from the currently loaded module data.
func (s *CourseStore) FetchLesson(ctx context.Context, courseID, moduleID, lessonID string) {
	s.setBusy()

	s.mu.Lock()
	defer s.mu.Unlock()

	module := s.currentModule
	if module == nil || module.ID != moduleID {
		course := s.lookupCourseLocked(courseID)
		if course == nil {
			s.loading = false
			s.errMsg = apperrors.NewNotFoundError("course", courseID).Message
			return
		}
		for i := range course.Modules {
			if course.Modules[i].ID == moduleID {
				module = &course.Modules[i]
				break
			}
		}
		if module == nil || module.ID != moduleID {
			s.loading = false
			s.errMsg = apperrors.NewNotFoundError("module", moduleID).Message
			return
		}
	}

	for i := range module.Lessons {
		if module.Lessons[i].ID == lessonID {
			l := module.Lessons[i]
			s.currentLesson = &l
			s.loading = false
			s.persistLocked(ctx)
			return
		}
	}

	s.loading = false
	s.errMsg = apperrors.NewNotFoundError("lesson", lessonID).Message
}

// FetchLessons loads the module and lesson tree for one course and attaches
// it to the cached records. The catalog payload omits lesson content, so
// course pages load it lazily.
func (s *CourseStore) FetchLessons(ctx context.Context, courseID string) {
	s.setBusy()

	var modules []models.Module
	err := s.deps.Gateway.Get(ctx, api.EndpointCourseLessons(courseID), &modules)
	if err != nil {
		s.log.Error("failed to fetch lessons for course %s: %v", courseID, err)
		s.finishError(apperrors.Message(err, "Failed to fetch lessons for course "+courseID))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attached := false
	if idx := slices.IndexFunc(s.courses, func(c models.Course) bool { return c.ID == courseID }); idx >= 0 {
		s.courses[idx].Modules = modules
		attached = true
	}
	if s.currentCourse != nil && s.currentCourse.ID == courseID {
		c := *s.currentCourse
		c.Modules = modules
		s.currentCourse = &c
		attached = true
	}
	if !attached {
		s.loading = false
		s.errMsg = apperrors.NewNotFoundError("course", courseID).Message
		return
	}

	s.loading = false
	s.persistLocked(ctx)
}

// EnrollInCourse registers the enrollment server-side and records the id
// locally. Enrolling twice is a no-op.
func (s *CourseStore) EnrollInCourse(ctx context.Context, courseID string) {
	s.setBusy()

	if err := s.deps.Gateway.Post(ctx, api.EndpointCourseEnroll(courseID), nil, nil); err != nil {
		s.log.Error("failed to enroll in course %s: %v", courseID, err)
		s.finishError(apperrors.Message(err, "Failed to enroll in course "+courseID))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.enrolled, courseID) {
		s.enrolled = append(s.enrolled, courseID)
	}
	s.loading = false
	s.persistLocked(ctx)
}

// MarkLessonAsCompleted confirms the completion server-side, then bumps the
// course's completed-lesson counter (capped at the total) and recomputes the
// progress percentage. The current-course pointer is kept in sync when it
// refers to the same course.
func (s *CourseStore) MarkLessonAsCompleted(ctx context.Context, courseID, moduleID, lessonID string) {
	s.setBusy()

	body := map[string]string{"moduleId": moduleID, "lessonId": lessonID}
	if err := s.deps.Gateway.Post(ctx, api.EndpointCourseProgress(courseID), body, nil); err != nil {
		s.log.Error("failed to mark lesson %s as completed: %v", lessonID, err)
		s.finishError(apperrors.Message(err, "Failed to mark lesson as completed"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.courses, func(c models.Course) bool { return c.ID == courseID })
	if idx < 0 {
		s.loading = false
		s.errMsg = apperrors.NewNotFoundError("course", courseID).Message
		return
	}

	course := &s.courses[idx]
	if course.CompletedLessons < course.TotalLessons {
		course.CompletedLessons++
		course.RecomputeProgress()
	}

	if s.currentCourse != nil && s.currentCourse.ID == courseID {
		c := *course
		s.currentCourse = &c
	}

	s.loading = false
	s.lastFetched = Timestamp()
	s.persistLocked(ctx)
}

// UpdateCourseProgress recomputes the progress percentage for one course
// from its lesson counters.
func (s *CourseStore) UpdateCourseProgress(ctx context.Context, courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.courses, func(c models.Course) bool { return c.ID == courseID })
	if idx < 0 {
		return
	}

	course := &s.courses[idx]
	if course.TotalLessons == 0 {
		return
	}
	course.RecomputeProgress()

	if s.currentCourse != nil && s.currentCourse.ID == courseID {
		c := *course
		s.currentCourse = &c
	}

	s.lastFetched = Timestamp()
	s.persistLocked(ctx)
}

// Reset restores every field to its initial empty value and clears the
// persisted snapshot.
func (s *CourseStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = nil
	s.enrolled = nil
	s.currentCourse = nil
	s.currentModule = nil
	s.currentLesson = nil
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
	clearSnapshot(ctx, s.deps.KV, coursePersist)
}

// setBusy flags the store loading and clears any stale error, the entry
// point for actions without a staleness guard.
func (s *CourseStore) setBusy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

// lookupCourseLocked prefers the current course, then the catalog. Caller
// holds the lock.
func (s *CourseStore) lookupCourseLocked(courseID string) *models.Course {
	if s.currentCourse != nil && s.currentCourse.ID == courseID {
		return s.currentCourse
	}
	for i := range s.courses {
		if s.courses[i].ID == courseID {
			return &s.courses[i]
		}
	}
	return nil
}
