package querycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(NewMemoryStore(), time.Minute, zerolog.Nop())
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, Key("courses"), Courses())
	assert.Equal(t, Key("students"), Students())
	assert.Equal(t, Key("modules:7"), Modules(7))
	assert.Equal(t, Key("videos:3"), Videos(3))
	assert.Equal(t, Key("student-courses:11"), StudentCourses(11))
	assert.Equal(t, Key("course-students:4"), CourseStudents(4))

	// Different parents never collide
	assert.NotEqual(t, Modules(1), Modules(2))
	assert.NotEqual(t, Modules(1), Videos(1))
}

func TestFetchFillsOnceUntilInvalidated(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	fills := 0
	fill := func(context.Context) ([]string, error) {
		fills++
		return []string{"a", "b"}, nil
	}

	got, err := Fetch(ctx, cache, Courses(), fill)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, fills)

	// Second read is served from the cache
	got, err = Fetch(ctx, cache, Courses(), fill)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, fills)

	cache.Invalidate(ctx, Courses())

	_, err = Fetch(ctx, cache, Courses(), fill)
	require.NoError(t, err)
	assert.Equal(t, 2, fills)
}

func TestFetchDistinctKeysAreIndependent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, err := Fetch(ctx, cache, Modules(1), func(context.Context) ([]int, error) {
		return []int{1}, nil
	})
	require.NoError(t, err)

	got, err := Fetch(ctx, cache, Modules(2), func(context.Context) ([]int, error) {
		return []int{2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got)
}

func TestFetchPropagatesFillError(t *testing.T) {
	cache := newTestCache(t)
	boom := errors.New("db down")

	_, err := Fetch(context.Background(), cache, Students(), func(context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// A failed fill caches nothing
	fills := 0
	_, err = Fetch(context.Background(), cache, Students(), func(context.Context) ([]string, error) {
		fills++
		return []string{"x"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fills)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	// Never stored, still safe
	cache.Invalidate(ctx, Courses())
	cache.Invalidate(ctx, Courses(), Modules(1))
	cache.Invalidate(ctx)

	var nilCache *Cache
	nilCache.Invalidate(ctx, Courses())
}

func TestFetchNilCacheAlwaysFills(t *testing.T) {
	fills := 0
	for i := 0; i < 3; i++ {
		got, err := Fetch(context.Background(), nil, Courses(), func(context.Context) (int, error) {
			fills++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	}
	assert.Equal(t, 3, fills)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Courses(), []byte("v"), 10*time.Millisecond))

	_, found, err := store.Get(ctx, Courses())
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(20 * time.Millisecond)

	_, found, err = store.Get(ctx, Courses())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Courses(), []byte("a"), 0))
	require.NoError(t, store.Set(ctx, Students(), []byte("b"), 0))

	require.NoError(t, store.Delete(ctx, Courses(), Students()))

	_, found, err := store.Get(ctx, Courses())
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = store.Get(ctx, Students())
	require.NoError(t, err)
	assert.False(t, found)
}
