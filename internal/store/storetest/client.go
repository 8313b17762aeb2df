// Package storetest provides an in-memory fake of the DynamoDB client
// subset used by the store package, for tests that exercise collections
// without a real table.
package storetest

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is an in-memory stand-in for *dynamodb.Client. Items are kept per
// table in insertion order, which becomes the scan order. Setting Err makes
// every call fail with it.
type Client struct {
	mu     sync.Mutex
	tables map[string]*table

	Err error
}

type table struct {
	order []string
	items map[string]map[string]types.AttributeValue
}

// New creates an empty fake client.
func New() *Client {
	return &Client{tables: make(map[string]*table)}
}

func (c *Client) tableFor(name string) *table {
	t, ok := c.tables[name]
	if !ok {
		t = &table{items: make(map[string]map[string]types.AttributeValue)}
		c.tables[name] = t
	}
	return t
}

// Len returns the number of items in a table.
func (c *Client) Len(tableName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tableFor(tableName).items)
}

func (c *Client) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	t := c.tableFor(*params.TableName)
	item, ok := t.items[keyOf(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (c *Client) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	t := c.tableFor(*params.TableName)
	key := keyOf(params.Item)
	if _, exists := t.items[key]; !exists {
		t.order = append(t.order, key)
	}
	t.items[key] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (c *Client) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	t := c.tableFor(*params.TableName)
	key := keyOf(params.Key)
	if _, exists := t.items[key]; exists {
		delete(t.items, key)
		for i, k := range t.order {
			if k == key {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	// Deleting a missing key is a successful no-op, as in DynamoDB.
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan walks items in insertion order, honoring Limit, ExclusiveStartKey
// and the equality-only filter expressions the store package generates.
func (c *Client) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	t := c.tableFor(*params.TableName)

	start := 0
	if params.ExclusiveStartKey != nil {
		after := keyOf(params.ExclusiveStartKey)
		for i, k := range t.order {
			if k == after {
				start = i + 1
				break
			}
		}
	}

	limit := len(t.order)
	if params.Limit != nil {
		limit = int(*params.Limit)
	}

	out := &dynamodb.ScanOutput{}
	scanned := 0
	for i := start; i < len(t.order); i++ {
		if scanned == limit {
			out.LastEvaluatedKey = map[string]types.AttributeValue{
				"key": &types.AttributeValueMemberS{Value: t.order[i-1]},
			}
			break
		}
		item := t.items[t.order[i]]
		scanned++
		if matches(item, params) {
			out.Items = append(out.Items, copyItem(item))
		}
	}
	return out, nil
}

// matches evaluates a filter expression of the shape the store builds:
// "#f0 = :v0 AND #f1 = :v1 ...".
func matches(item map[string]types.AttributeValue, params *dynamodb.ScanInput) bool {
	if params.FilterExpression == nil {
		return true
	}
	for _, clause := range strings.Split(*params.FilterExpression, " AND ") {
		parts := strings.Split(clause, " = ")
		if len(parts) != 2 {
			return false
		}
		field := params.ExpressionAttributeNames[parts[0]]
		want := params.ExpressionAttributeValues[parts[1]]
		if !reflect.DeepEqual(item[field], want) {
			return false
		}
	}
	return true
}

func keyOf(item map[string]types.AttributeValue) string {
	if v, ok := item["key"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
