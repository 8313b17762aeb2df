package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacentio/agora/internal/store"
)

// Users provides signup and lookup over the users collection.
type Users struct {
	collection *store.Collection
	hasher     *Hasher
}

// NewUsers constructs the user service.
func NewUsers(collection *store.Collection, hasher *Hasher) *Users {
	return &Users{collection: collection, hasher: hasher}
}

// Signup registers a new user. It fails with ErrConflict when another user
// already has the given email. The duplicate check is a scan before the
// insert and is not atomic under concurrent signups.
func (s *Users) Signup(ctx context.Context, email, name, description, password string) (*User, error) {
	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %q", ErrConflict, email)
	}

	user := User{
		Email:        email,
		Name:         name,
		Description:  description,
		PasswordHash: s.hasher.Hash(password),
	}
	rec, err := store.MarshalRecord(user)
	if err != nil {
		return nil, err
	}

	stored, err := s.collection.Put(ctx, rec, NewKey())
	if err != nil {
		return nil, err
	}

	var out User
	if err := store.UnmarshalRecord(stored, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByEmail returns the user with the given email, scanning the full
// collection. It fails with ErrUnauthorized when no user matches.
func (s *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: no user with email %q", ErrUnauthorized, email)
	}
	return user, nil
}

// GetByKey returns the user with the given key. It fails with
// ErrUnauthorized when the key does not resolve.
func (s *Users) GetByKey(ctx context.Context, key string) (*User, error) {
	rec, err := s.collection.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: no user with key %q", ErrUnauthorized, key)
	}
	if err != nil {
		return nil, err
	}

	var user User
	if err := store.UnmarshalRecord(rec, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signin verifies the given credentials and returns the matching user. It
// fails with ErrUnauthorized when the email is unknown or the password does
// not match. Token issuance is the caller's concern.
func (s *Users) Signin(ctx context.Context, email, password string) (*User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: bad credentials for %q", ErrUnauthorized, email)
	}
	return user, nil
}

// findByEmail scans for the first user with the given email, or nil when
// none exists. Equality scan with no secondary index; O(n) by design.
func (s *Users) findByEmail(ctx context.Context, email string) (*User, error) {
	pages, err := s.collection.Fetch(ctx, store.Filter{"email": email}, 0)
	if err != nil {
		return nil, err
	}
	for pages.HasMorePages() {
		recs, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			var user User
			if err := store.UnmarshalRecord(recs[0], &user); err != nil {
				return nil, err
			}
			return &user, nil
		}
	}
	return nil, nil
}
