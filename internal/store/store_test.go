package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/agora/internal/store"
	"github.com/jacentio/agora/internal/store/storetest"
)

type doc struct {
	Key       string `dynamodbav:"key"`
	Name      string `dynamodbav:"name"`
	Group     string `dynamodbav:"group"`
	CreatedAt string `dynamodbav:"created_at,omitempty"`
	UpdatedAt string `dynamodbav:"updated_at,omitempty"`
}

func newCollection(t *testing.T) (*store.Collection, *storetest.Client) {
	t.Helper()
	client := storetest.New()
	s := store.New(client, store.Config{TablePrefix: "test_"})
	return s.Collection("docs"), client
}

func TestCollectionTablePrefix(t *testing.T) {
	c, _ := newCollection(t)
	if c.Table() != "test_docs" {
		t.Errorf("expected table 'test_docs', got %q", c.Table())
	}
}

func TestGetMissing(t *testing.T) {
	c, _ := newCollection(t)

	_, err := c.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPutAssignsKeyAndTimestamps(t *testing.T) {
	c, _ := newCollection(t)

	rec, err := store.MarshalRecord(doc{Name: "a"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	stored, err := c.Put(context.Background(), rec, "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	if stored.Key() == "" {
		t.Error("expected a generated key")
	}

	var got doc
	if err := store.UnmarshalRecord(stored, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Errorf("expected timestamps to be stamped, got %+v", got)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, _ := newCollection(t)
	ctx := context.Background()

	rec, _ := store.MarshalRecord(doc{Name: "round", Group: "trip"})
	stored, err := c.Put(ctx, rec, "fixed-key")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	fetched, err := c.Get(ctx, "fixed-key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	var want, got doc
	_ = store.UnmarshalRecord(stored, &want)
	_ = store.UnmarshalRecord(fetched, &got)
	if want != got {
		t.Errorf("round trip mismatch: put %+v, got %+v", want, got)
	}
}

func TestPutKeepsExistingTimestamps(t *testing.T) {
	c, _ := newCollection(t)
	ctx := context.Background()

	rec, _ := store.MarshalRecord(doc{Name: "a", CreatedAt: "2020-01-01T00:00:00Z", UpdatedAt: "2020-01-02T00:00:00Z"})
	stored, err := c.Put(ctx, rec, "k")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	var got doc
	_ = store.UnmarshalRecord(stored, &got)
	if got.CreatedAt != "2020-01-01T00:00:00Z" {
		t.Errorf("expected created_at preserved, got %q", got.CreatedAt)
	}
	if got.UpdatedAt != "2020-01-02T00:00:00Z" {
		t.Errorf("expected updated_at preserved, got %q", got.UpdatedAt)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c, client := newCollection(t)
	ctx := context.Background()

	rec, _ := store.MarshalRecord(doc{Name: "a"})
	if _, err := c.Put(ctx, rec, "k"); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if client.Len("test_docs") != 0 {
		t.Errorf("expected empty table, got %d items", client.Len("test_docs"))
	}

	// Deleting a missing key is a no-op, not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestFetchEqualityFilter(t *testing.T) {
	c, _ := newCollection(t)
	ctx := context.Background()

	for i, g := range []string{"x", "y", "x"} {
		rec, _ := store.MarshalRecord(doc{Name: "n", Group: g})
		if _, err := c.Put(ctx, rec, string(rune('a'+i))); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	pages, err := c.Fetch(ctx, store.Filter{"group": "x"}, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var total int
	for pages.HasMorePages() {
		recs, err := pages.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		total += len(recs)
	}
	if total != 2 {
		t.Errorf("expected 2 records in group x, got %d", total)
	}
}

func TestFetchPageGrouping(t *testing.T) {
	c, _ := newCollection(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec, _ := store.MarshalRecord(doc{Name: "n"})
		if _, err := c.Put(ctx, rec, string(rune('a'+i))); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	pages, err := c.Fetch(ctx, nil, 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var sizes []int
	for pages.HasMorePages() {
		recs, err := pages.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		sizes = append(sizes, len(recs))
	}
	want := []int{2, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d pages, got %d (%v)", len(want), len(sizes), sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("page %d: expected %d records, got %d", i+1, want[i], sizes[i])
		}
	}
}

func TestStoreFailuresWrapUnavailable(t *testing.T) {
	c, client := newCollection(t)
	ctx := context.Background()
	client.Err = errors.New("throttled")

	if _, err := c.Get(ctx, "k"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("get: expected ErrUnavailable, got %v", err)
	}
	if _, err := c.Put(ctx, store.Record{"name": &types.AttributeValueMemberS{Value: "a"}}, "k"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("put: expected ErrUnavailable, got %v", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("delete: expected ErrUnavailable, got %v", err)
	}

	pages, err := c.Fetch(ctx, nil, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := pages.Next(ctx); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("scan: expected ErrUnavailable, got %v", err)
	}
}
