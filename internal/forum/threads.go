package forum

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jacentio/agora/internal/store"
)

// DefaultPageSize is used by listings when the caller passes no page size.
const DefaultPageSize = 10

// Threads provides creation and listing over the threads collection.
type Threads struct {
	collection *store.Collection
	users      *Users
}

// NewThreads constructs the thread service. The user service is used to
// hydrate thread authors on read.
func NewThreads(collection *store.Collection, users *Users) *Threads {
	return &Threads{collection: collection, users: users}
}

// Create stores a new thread authored by author. It fails with ErrConflict
// when a thread with the same name already exists. As with user emails, the
// name check is a scan before the insert and is not atomic.
func (s *Threads) Create(ctx context.Context, name string, author *User) (*Thread, error) {
	taken, err := s.nameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: thread named %q", ErrConflict, name)
	}

	thread := Thread{
		Name:      name,
		AuthorKey: author.Key,
	}
	rec, err := store.MarshalRecord(thread)
	if err != nil {
		return nil, err
	}

	stored, err := s.collection.Put(ctx, rec, "")
	if err != nil {
		return nil, err
	}

	var out Thread
	if err := store.UnmarshalRecord(stored, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the thread with the given key, or nil when it does not
// exist. Absence is not an error here; callers decide.
func (s *Threads) Get(ctx context.Context, key string) (*Thread, error) {
	rec, err := s.collection.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var thread Thread
	if err := store.UnmarshalRecord(rec, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// List returns the pageNumber-th page of threads, in store scan order,
// with pages of at most pageSize records. It fails with ErrNotFound when
// pageNumber runs past the available pages. Every returned thread is
// hydrated with its author; a failed hydration fails the whole listing.
func (s *Threads) List(ctx context.Context, pageSize, pageNumber int) ([]Thread, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	// Clamp before the int32 conversion: a wrapped limit would turn an
	// absurd caller value into tiny (or unbounded) scan pages.
	if pageSize > math.MaxInt32 {
		pageSize = math.MaxInt32
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}

	pages, err := s.collection.Fetch(ctx, nil, int32(pageSize))
	if err != nil {
		return nil, err
	}

	var recs []store.Record
	for i := 0; i < pageNumber; i++ {
		if !pages.HasMorePages() {
			return nil, fmt.Errorf("%w: page %d is out of range", ErrNotFound, pageNumber)
		}
		recs, err = pages.Next(ctx)
		if err != nil {
			return nil, err
		}
	}

	threads := make([]Thread, 0, len(recs))
	for _, rec := range recs {
		var thread Thread
		if err := store.UnmarshalRecord(rec, &thread); err != nil {
			return nil, err
		}
		author, err := s.users.GetByKey(ctx, thread.AuthorKey)
		if err != nil {
			return nil, err
		}
		thread.Author = author
		threads = append(threads, thread)
	}
	return threads, nil
}

// nameTaken reports whether any thread already uses name.
func (s *Threads) nameTaken(ctx context.Context, name string) (bool, error) {
	pages, err := s.collection.Fetch(ctx, store.Filter{"name": name}, 0)
	if err != nil {
		return false, err
	}
	for pages.HasMorePages() {
		recs, err := pages.Next(ctx)
		if err != nil {
			return false, err
		}
		if len(recs) > 0 {
			return true, nil
		}
	}
	return false, nil
}
