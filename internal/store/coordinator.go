package store

import (
	"context"
	"sync"

	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
)

// Coordinator wires the stores together at application start: it runs the
// initial auth check, fans out refreshes for stale data stores, and keeps
// this process in sync with storage writes made by other processes.
type Coordinator struct {
	users     *UserStore
	courses   *CourseStore
	analytics *AnalyticsStore
	cars      *CarsAnalyticsStore
	testTime  *TestTimeStore
	calendar  *CalendarStore

	kv       storage.KV
	deps     Deps
	log      *logger.Logger
	seedUser *models.User

	mu          sync.Mutex
	unsubscribe func()
}

// Stores bundles the six store instances a Coordinator manages.
type Stores struct {
	Users     *UserStore
	Courses   *CourseStore
	Analytics *AnalyticsStore
	Cars      *CarsAnalyticsStore
	TestTime  *TestTimeStore
	Calendar  *CalendarStore
}

// NewStores constructs every store against the same dependencies.
func NewStores(deps Deps) Stores {
	return Stores{
		Users:     NewUserStore(deps),
		Courses:   NewCourseStore(deps),
		Analytics: NewAnalyticsStore(deps),
		Cars:      NewCarsAnalyticsStore(deps),
		TestTime:  NewTestTimeStore(deps),
		Calendar:  NewCalendarStore(deps),
	}
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithSeedUser supplies externally obtained user data, merged into the user
// store when the stored token does not verify.
func WithSeedUser(user models.User) CoordinatorOption {
	return func(c *Coordinator) {
		u := user
		c.seedUser = &u
	}
}

// NewCoordinator builds a coordinator over the given stores.
func NewCoordinator(deps Deps, stores Stores, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		users:     stores.Users,
		courses:   stores.Courses,
		analytics: stores.Analytics,
		cars:      stores.Cars,
		testTime:  stores.TestTime,
		calendar:  stores.Calendar,
		kv:        deps.KV,
		deps:      deps,
		log:       logger.Default().WithPrefix("coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start runs the initial synchronization pass and subscribes to external
// storage changes. It blocks until the initial pass completes.
func (c *Coordinator) Start(ctx context.Context) {
	c.log.Info("running initial store synchronization")

	if c.users.CheckAuthStatus(ctx) {
		c.refreshStale(ctx)
	} else if c.seedUser != nil {
		c.log.Debug("auth check failed, seeding user data without authentication")
		c.users.SeedUser(*c.seedUser)
	}

	c.mu.Lock()
	c.unsubscribe = c.kv.Subscribe(func(key string) {
		c.onExternalChange(ctx, key)
	})
	c.mu.Unlock()
}

// refreshStale fans out refreshes for every data store whose cache has
// outlived the staleness window. Fetches run concurrently; nothing orders
// course data against analytics data.
func (c *Coordinator) refreshStale(ctx context.Context) {
	threshold := c.deps.staleThreshold()

	refreshes := []struct {
		name        string
		lastFetched int64
		fetch       func(context.Context)
	}{
		{"courses", c.courses.LastFetched(), c.courses.FetchCourses},
		{"analytics", c.analytics.LastFetched(), c.analytics.FetchAnalytics},
		{"test-time", c.testTime.LastFetched(), c.testTime.FetchTestTimeData},
		{"cars-analytics", c.cars.LastFetched(), c.cars.FetchCarsAnalytics},
	}

	var wg sync.WaitGroup
	for _, r := range refreshes {
		if !IsStale(r.lastFetched, threshold) {
			c.log.Debug("%s cache is fresh, skipping refresh", r.name)
			continue
		}
		c.log.Debug("%s cache is stale, refreshing", r.name)
		wg.Add(1)
		go func(fetch func(context.Context)) {
			defer wg.Done()
			fetch(ctx)
		}(r.fetch)
	}
	wg.Wait()
}

// onExternalChange re-synchronizes the store owning key after another
// process wrote to it. The response to a foreign write is "re-fetch the
// truth", never a field-level merge.
func (c *Coordinator) onExternalChange(ctx context.Context, key string) {
	c.log.Debug("external storage change: %s", key)

	switch key {
	case storage.UserStorageKey, storage.TokenKey:
		c.users.CheckAuthStatus(ctx)
	case storage.CourseStorageKey:
		c.courses.FetchCourses(ctx)
	case storage.AnalyticsStorageKey:
		c.analytics.FetchAnalytics(ctx)
	case storage.TestTimeStorageKey:
		c.testTime.FetchTestTimeData(ctx)
	case storage.CarsStorageKey:
		c.cars.FetchCarsAnalytics(ctx)
	default:
		// Keys we do not own (including calendar state) are ignored.
	}
}

// Stop detaches the storage subscription.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.log.Info("coordinator stopped")
}
