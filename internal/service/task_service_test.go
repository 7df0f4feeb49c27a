package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskr-api/internal/cache"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/mocks"
	rediscache "github.com/phrazzld/taskr-api/internal/platform/redis"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/store"
)

type redisFixture struct {
	svc   service.TaskService
	store *mocks.MockTaskStore
	mr    *miniredis.Miniredis
}

func newRedisFixture(t *testing.T) redisFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tasks := mocks.NewMockTaskStore()
	svc, err := service.NewTaskService(tasks, rediscache.NewCache(client), slog.Default(),
		service.WithInvalidateRetry(3, time.Millisecond))
	require.NoError(t, err)
	return redisFixture{svc: svc, store: tasks, mr: mr}
}

func newMockCacheService(t *testing.T, c *mocks.MockCache, buf *bytes.Buffer) (service.TaskService, *mocks.MockTaskStore) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc, err := service.NewTaskService(tasks, c, log, service.WithInvalidateRetry(3, time.Millisecond))
	require.NoError(t, err)
	return svc, tasks
}

func statusPtr(s domain.TaskStatus) *domain.TaskStatus {
	return &s
}

func TestNewTaskService_RequiresDependencies(t *testing.T) {
	_, err := service.NewTaskService(nil, mocks.NewMockCache(), nil)
	assert.Error(t, err)
	_, err = service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)
	assert.Error(t, err)
}

func TestListTasks_SecondReadServedFromCache(t *testing.T) {
	f := newRedisFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, "buy milk")
	require.NoError(t, err)

	first, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)
	second, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.store.Reads(), "second read must not touch the store")
	assert.True(t, f.mr.Exists(cache.TasksKey))
	assert.Equal(t, cache.DefaultTTL, f.mr.TTL(cache.TasksKey))
}

func TestListTasks_EmptyListingIsCached(t *testing.T) {
	f := newRedisFixture(t)
	ctx := context.Background()

	tasks, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Reads())
}

func TestMutationsInvalidateCache(t *testing.T) {
	f := newRedisFixture(t)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, "write report")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.NotEqual(t, uuid.Nil, task.ID)

	listing, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	require.True(t, f.mr.Exists(cache.TasksKey))

	updated, err := f.svc.UpdateTaskStatus(ctx, task.ID, statusPtr(domain.TaskStatusComplete))
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusComplete, updated.Status)
	assert.False(t, f.mr.Exists(cache.TasksKey), "update must drop the cached listing")

	listing, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, domain.TaskStatusComplete, listing[0].Status)

	require.NoError(t, f.svc.DeleteTask(ctx, task.ID))
	assert.False(t, f.mr.Exists(cache.TasksKey), "delete must drop the cached listing")

	listing, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)

	created, err := f.svc.CreateTask(ctx, "second")
	require.NoError(t, err)
	listing, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, created.ID, listing[0].ID)
}

func TestListTasks_ExpiredEntryForcesStoreRead(t *testing.T) {
	f := newRedisFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.store.Reads())

	f.mr.FastForward(cache.DefaultTTL - time.Second)
	_, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Reads())

	f.mr.FastForward(2 * time.Second)
	assert.False(t, f.mr.Exists(cache.TasksKey))

	_, err = f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Reads())
}

func TestWithCacheTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	svc, err := service.NewTaskService(mocks.NewMockTaskStore(), rediscache.NewCache(client), nil,
		service.WithCacheTTL(90*time.Second))
	require.NoError(t, err)

	_, err = svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, mr.TTL(cache.TasksKey))
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	c := mocks.NewMockCache()
	svc, tasks := newMockCacheService(t, c, &bytes.Buffer{})

	for _, title := range []string{"", "   "} {
		_, err := svc.CreateTask(context.Background(), title)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	}
	assert.Equal(t, 0, tasks.Writes())
	assert.Equal(t, 0, c.DeleteCalls)
}

func TestCreateTask_TrimsTitle(t *testing.T) {
	svc, _ := newMockCacheService(t, mocks.NewMockCache(), &bytes.Buffer{})

	task, err := svc.CreateTask(context.Background(), "  buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
}

func TestUpdateTaskStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status rejected before store access", func(t *testing.T) {
		svc, tasks := newMockCacheService(t, mocks.NewMockCache(), &bytes.Buffer{})
		_, err := svc.UpdateTaskStatus(ctx, uuid.New(), statusPtr("archived"))
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
		assert.Equal(t, 0, tasks.FindByIDCalls)
	})

	t.Run("unknown id", func(t *testing.T) {
		c := mocks.NewMockCache()
		svc, _ := newMockCacheService(t, c, &bytes.Buffer{})
		_, err := svc.UpdateTaskStatus(ctx, uuid.New(), statusPtr(domain.TaskStatusComplete))
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Equal(t, 0, c.DeleteCalls)
	})

	t.Run("nil status keeps current status", func(t *testing.T) {
		c := mocks.NewMockCache()
		svc, _ := newMockCacheService(t, c, &bytes.Buffer{})
		task, err := svc.CreateTask(ctx, "t")
		require.NoError(t, err)

		got, err := svc.UpdateTaskStatus(ctx, task.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		assert.Equal(t, 2, c.DeleteCalls)
	})
}

func TestDeleteTask_UnknownID(t *testing.T) {
	c := mocks.NewMockCache()
	svc, _ := newMockCacheService(t, c, &bytes.Buffer{})

	err := svc.DeleteTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.Equal(t, 0, c.DeleteCalls, "failed writes leave the cache alone")
}

func TestListTasks_CacheReadFailureFallsBackToStore(t *testing.T) {
	c := mocks.NewMockCache()
	c.GetErr = errors.New("redis: connection refused")
	var logs bytes.Buffer
	svc, tasks := newMockCacheService(t, c, &logs)

	_, err := svc.CreateTask(context.Background(), "t")
	require.NoError(t, err)

	listing, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, listing, 1)
	assert.Equal(t, 1, tasks.Reads())
	assert.Contains(t, logs.String(), "falling back to store")
}

func TestListTasks_CacheWriteFailureStillReturns(t *testing.T) {
	c := mocks.NewMockCache()
	c.SetErr = errors.New("OOM command not allowed")
	var logs bytes.Buffer
	svc, _ := newMockCacheService(t, c, &logs)

	listing, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listing)
	assert.Contains(t, logs.String(), "failed to populate task cache")
}

func TestListTasks_CorruptEntryIsReplaced(t *testing.T) {
	c := mocks.NewMockCache()
	c.Put(cache.TasksKey, []byte("{not json"))
	svc, tasks := newMockCacheService(t, c, &bytes.Buffer{})

	listing, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listing)
	assert.Equal(t, 1, tasks.Reads())
	assert.Equal(t, 1, c.SetCalls)
}

func TestListTasks_StoreFailure(t *testing.T) {
	c := mocks.NewMockCache()
	svc, tasks := newMockCacheService(t, c, &bytes.Buffer{})
	dbErr := errors.New("db down")
	tasks.FindAllErr = dbErr

	_, err := svc.ListTasks(context.Background())
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 0, c.SetCalls)
}

func TestInvalidationFailureDoesNotFailMutation(t *testing.T) {
	c := mocks.NewMockCache()
	c.DeleteErr = errors.New("redis: i/o timeout")
	var logs bytes.Buffer
	svc, tasks := newMockCacheService(t, c, &logs)

	task, err := svc.CreateTask(context.Background(), "t")
	require.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, 1, tasks.Len())
	assert.Equal(t, service.DefaultInvalidateAttempts, c.DeleteCalls)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), "failed to invalidate task cache")
}

func TestInvalidationRetriesTransientFailure(t *testing.T) {
	var logs bytes.Buffer
	failing := &flakyCache{MockCache: mocks.NewMockCache(), failures: 2}
	tasks := mocks.NewMockTaskStore()
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	svc, err := service.NewTaskService(tasks, failing, log, service.WithInvalidateRetry(3, time.Millisecond))
	require.NoError(t, err)

	_, err = svc.CreateTask(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, 3, failing.deletes)
	assert.NotContains(t, logs.String(), "failed to invalidate task cache")
}

// flakyCache fails the first few Delete calls.
type flakyCache struct {
	*mocks.MockCache
	failures int
	deletes  int
}

func (f *flakyCache) Delete(ctx context.Context, key string) error {
	f.deletes++
	if f.deletes <= f.failures {
		return errors.New("transient")
	}
	return f.MockCache.Delete(ctx, key)
}
