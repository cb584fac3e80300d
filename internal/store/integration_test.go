package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalil/prepdash/internal/api"
	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/store"
	"github.com/mkalil/prepdash/internal/testutil"
)

// End-to-end path: real gateway client against the in-process backend, with
// sqlite-backed local storage underneath the stores.
func TestStoresAgainstFakeBackend(t *testing.T) {
	ctx := context.Background()

	fake := testutil.NewFakeAPI(t)
	kv := testutil.NewTestKV(t)
	defer testutil.MustClose(t, kv)

	cfg := testutil.TestConfig()
	cfg.APIBaseURL = fake.URL()

	client := api.New(fake.URL(), kv, api.WithTimeout(cfg.RequestTimeout))
	deps := store.Deps{Gateway: client, KV: kv, Config: cfg}

	stores := store.NewStores(deps)

	stores.Users.Login(ctx, "mohamad@example.com", "password123")
	require.True(t, stores.Users.IsAuthenticated())
	require.Empty(t, stores.Users.Error())

	token, ok, err := kv.Get(ctx, storage.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "token-mohamad@example.com", string(token))

	stores.Courses.FetchCourses(ctx)
	assert.Empty(t, stores.Courses.Error())
	assert.NotEmpty(t, stores.Courses.Courses())

	stores.Analytics.FetchAnalytics(ctx)
	assert.Empty(t, stores.Analytics.Error())
	require.NotNil(t, stores.Analytics.Analytics())

	stores.TestTime.FetchTestTimeData(ctx)
	assert.Empty(t, stores.TestTime.Error())
	assert.NotEmpty(t, stores.TestTime.TestTimeData())

	stores.Cars.FetchCarsAnalytics(ctx)
	assert.Empty(t, stores.Cars.Error())
	require.NotNil(t, stores.Cars.Bundle())

	stores.Calendar.FetchEvents(ctx)
	assert.Empty(t, stores.Calendar.Error())
	assert.NotEmpty(t, stores.Calendar.Events())

	before := fake.Requests()
	stores.Courses.FetchCourses(ctx)
	assert.Equal(t, before, fake.Requests(), "fresh caches never touch the network")
}

func TestCoordinatorAgainstFakeBackend(t *testing.T) {
	ctx := context.Background()

	fake := testutil.NewFakeAPI(t)
	kv := testutil.NewTestKV(t)
	defer testutil.MustClose(t, kv)

	cfg := testutil.TestConfig()
	cfg.APIBaseURL = fake.URL()

	client := api.New(fake.URL(), kv)
	deps := store.Deps{Gateway: client, KV: kv, Config: cfg}

	// A previous session left a token behind; the fake accepts any token, so
	// verification succeeds and the cold stores refresh.
	testutil.SetToken(t, kv, "token-from-last-session")

	stores := store.NewStores(deps)
	coord := store.NewCoordinator(deps, stores)
	coord.Start(ctx)
	defer coord.Stop()

	assert.True(t, stores.Users.IsAuthenticated())
	assert.NotEmpty(t, stores.Courses.Courses())
	require.NotNil(t, stores.Analytics.Analytics())
	assert.NotEmpty(t, stores.TestTime.TestTimeData())
	require.NotNil(t, stores.Cars.Bundle())
}
