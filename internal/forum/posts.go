package forum

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jacentio/agora/internal/store"
)

// Posts provides creation, listing and author-scoped deletion over the
// posts collection.
type Posts struct {
	collection *store.Collection
	users      *Users
}

// NewPosts constructs the post service. The user service is used to hydrate
// post authors on read and for the deletion ownership check.
func NewPosts(collection *store.Collection, users *Users) *Posts {
	return &Posts{collection: collection, users: users}
}

// Create stores a new post by author in the given thread. Posts carry no
// uniqueness constraint; this is a direct insert.
func (s *Posts) Create(ctx context.Context, threadKey, body string, author *User) (*Post, error) {
	post := Post{
		ThreadKey: threadKey,
		AuthorKey: author.Key,
		Body:      body,
	}
	rec, err := store.MarshalRecord(post)
	if err != nil {
		return nil, err
	}

	stored, err := s.collection.Put(ctx, rec, "")
	if err != nil {
		return nil, err
	}

	var out Post
	if err := store.UnmarshalRecord(stored, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the post with the given key. It fails with ErrNotFound
// when the post does not exist and with ErrUnauthorized when requester is
// not the post's author.
func (s *Posts) Delete(ctx context.Context, postKey string, requester *User) error {
	rec, err := s.collection.Get(ctx, postKey)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: post %q", ErrNotFound, postKey)
	}
	if err != nil {
		return err
	}

	var post Post
	if err := store.UnmarshalRecord(rec, &post); err != nil {
		return err
	}
	author, err := s.users.GetByKey(ctx, post.AuthorKey)
	if err != nil {
		return err
	}
	if author.Key != requester.Key {
		return fmt.Errorf("%w: deleting post %q is not permitted", ErrUnauthorized, postKey)
	}

	return s.collection.Delete(ctx, postKey)
}

// List returns the pageNumber-th page of posts in thread, newest first.
// All matching posts are fetched into memory, sorted by created_at
// descending, and sliced; the store gives no ordering guarantee. It fails
// with ErrNotFound when the slice start is at or beyond the post count.
// Every returned post is hydrated with its author; a failed hydration
// aborts the call.
func (s *Posts) List(ctx context.Context, thread *Thread, pageSize, pageNumber int) ([]Post, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}

	pages, err := s.collection.Fetch(ctx, store.Filter{"thread_key": thread.Key}, 0)
	if err != nil {
		return nil, err
	}

	var all []Post
	for pages.HasMorePages() {
		recs, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			var post Post
			if err := store.UnmarshalRecord(rec, &post); err != nil {
				return nil, err
			}
			all = append(all, post)
		}
	}

	// RFC 3339 timestamps sort lexicographically in time order.
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})

	// An overflowed product must read as out of range, never index the
	// slice; both values arrive unvalidated from the query string.
	start := pageSize * (pageNumber - 1)
	if start < 0 || start/pageSize != pageNumber-1 || len(all) <= start {
		return nil, fmt.Errorf("%w: page %d is out of range", ErrNotFound, pageNumber)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	posts := all[start:end]
	for i := range posts {
		author, err := s.users.GetByKey(ctx, posts[i].AuthorKey)
		if err != nil {
			return nil, err
		}
		posts[i].Author = author
	}
	return posts, nil
}
