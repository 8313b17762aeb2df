package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// keyAttr is the partition key attribute of every collection table.
const keyAttr = "key"

// Record is a raw document as stored in DynamoDB.
type Record map[string]types.AttributeValue

// Key returns the record's partition key, or "" if unset.
func (r Record) Key() string {
	if v, ok := r[keyAttr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// Client is the subset of the DynamoDB API the store uses. *dynamodb.Client
// satisfies it; tests substitute an in-memory fake.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Config holds configuration for the Store.
type Config struct {
	// TablePrefix is prepended to every collection name, isolating
	// environments (e.g. "test_") that share one AWS account.
	TablePrefix string
}

// Store hands out collections backed by a shared DynamoDB client.
type Store struct {
	client Client
	config Config
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	return &Store{client: client, config: config}
}

// Collection returns the named collection. The table name is the collection
// name with the configured prefix applied.
func (s *Store) Collection(name string) *Collection {
	return &Collection{
		client: s.client,
		table:  s.config.TablePrefix + name,
	}
}

// Collection provides document operations against one DynamoDB table.
type Collection struct {
	client Client
	table  string
}

// Table returns the underlying table name.
func (c *Collection) Table() string { return c.table }

// Get retrieves a record by key, returning ErrNotFound if missing.
func (c *Collection) Get(ctx context.Context, key string) (Record, error) {
	result, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w: %w", c.table, key, ErrUnavailable, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return Record(result.Item), nil
}

// Put stores a record. An empty key assigns a fresh UUID. Missing
// created_at/updated_at attributes are stamped with the current time.
// The stored record is returned.
func (c *Collection) Put(ctx context.Context, rec Record, key string) (Record, error) {
	if key == "" {
		key = uuid.NewString()
	}

	stored := make(Record, len(rec)+3)
	for k, v := range rec {
		stored[k] = v
	}
	stored[keyAttr] = &types.AttributeValueMemberS{Value: key}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = &types.AttributeValueMemberS{Value: now}
	}
	if _, ok := stored["updated_at"]; !ok {
		stored["updated_at"] = &types.AttributeValueMemberS{Value: now}
	}

	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      stored,
	})
	if err != nil {
		return nil, fmt.Errorf("put %s/%s: %w: %w", c.table, key, ErrUnavailable, err)
	}
	return stored, nil
}

// Delete removes a record by key. Deleting a missing key is a no-op.
func (c *Collection) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w: %w", c.table, key, ErrUnavailable, err)
	}
	return nil
}

// MarshalRecord converts a model struct to a Record.
func MarshalRecord(v any) (Record, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return Record(item), nil
}

// UnmarshalRecord populates a model struct from a Record.
func UnmarshalRecord(rec Record, v any) error {
	if err := attributevalue.UnmarshalMap(rec, v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}
