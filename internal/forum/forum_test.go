package forum_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacentio/agora/internal/forum"
	"github.com/jacentio/agora/internal/store"
	"github.com/jacentio/agora/internal/store/storetest"
)

// fixture wires the three services over an in-memory store.
type fixture struct {
	users   *forum.Users
	threads *forum.Threads
	posts   *forum.Posts
	store   *store.Store
	client  *storetest.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := storetest.New()
	st := store.New(client, store.Config{})

	users := forum.NewUsers(st.Collection("users"), forum.NewHasher("unit-test-salt"))
	threads := forum.NewThreads(st.Collection("threads"), users)
	posts := forum.NewPosts(st.Collection("posts"), users)

	return &fixture{users: users, threads: threads, posts: posts, store: st, client: client}
}

func (f *fixture) signup(t *testing.T, email, name string) *forum.User {
	t.Helper()
	user, err := f.users.Signup(context.Background(), email, name, "", "s3cret")
	require.NoError(t, err)
	return user
}
