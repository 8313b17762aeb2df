package forum_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/agora/internal/forum"
)

func TestCreateThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")

	thread, err := f.threads.Create(ctx, "general", author)
	require.NoError(t, err)

	assert.NotEmpty(t, thread.Key)
	assert.Equal(t, "general", thread.Name)
	assert.Equal(t, author.Key, thread.AuthorKey)
	assert.NotEmpty(t, thread.CreatedAt)
}

func TestCreateThreadDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")

	_, err := f.threads.Create(ctx, "general", author)
	require.NoError(t, err)

	_, err = f.threads.Create(ctx, "general", author)
	assert.ErrorIs(t, err, forum.ErrConflict)
}

func TestGetThreadAbsent(t *testing.T) {
	f := newFixture(t)

	thread, err := f.threads.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, thread, "absence is not an error; the caller decides")
}

func TestListThreads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")
	for i := 0; i < 5; i++ {
		_, err := f.threads.Create(ctx, fmt.Sprintf("topic-%d", i), author)
		require.NoError(t, err)
	}

	threads, err := f.threads.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	for _, thread := range threads {
		require.NotNil(t, thread.Author)
		assert.Equal(t, author.Key, thread.Author.Key)
		assert.Equal(t, author.Name, thread.Author.Name)
	}

	// Last partial page.
	threads, err = f.threads.List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Len(t, threads, 1)
}

func TestListThreadsClampsHugeLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")
	for i := 0; i < 5; i++ {
		_, err := f.threads.Create(ctx, fmt.Sprintf("topic-%d", i), author)
		require.NoError(t, err)
	}

	// 2^32+2 truncates to a page size of 2 if converted to int32
	// unclamped; the first page must still hold everything.
	huge := int(int64(math.MaxInt32)*2 + 4)
	threads, err := f.threads.List(ctx, huge, 1)
	require.NoError(t, err)
	assert.Len(t, threads, 5)
}

func TestListThreadsPageOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")
	for i := 0; i < 5; i++ {
		_, err := f.threads.Create(ctx, fmt.Sprintf("topic-%d", i), author)
		require.NoError(t, err)
	}

	_, err := f.threads.List(ctx, 10, 100)
	assert.ErrorIs(t, err, forum.ErrNotFound)
}

func TestListThreadsHydrationFailureAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.signup(t, "ann@example.com", "ann")
	_, err := f.threads.Create(ctx, "general", author)
	require.NoError(t, err)

	// Remove the author behind the service's back; hydration must fail the
	// whole listing, with no partial results.
	require.NoError(t, f.store.Collection("users").Delete(ctx, author.Key))

	_, err = f.threads.List(ctx, 10, 1)
	assert.ErrorIs(t, err, forum.ErrUnauthorized)
}
