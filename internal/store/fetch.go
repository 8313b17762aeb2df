package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Filter selects records by exact attribute equality. Multiple entries are
// combined with AND. A nil or empty filter matches every record.
type Filter map[string]any

// Fetch scans the collection for records matching filter, grouped into
// store-defined pages of at most pageSize records (unbounded when
// pageSize <= 0). Pages holds no records until Next is called.
func (c *Collection) Fetch(ctx context.Context, filter Filter, pageSize int32) (*Pages, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(c.table),
	}
	if pageSize > 0 {
		input.Limit = aws.Int32(pageSize)
	}

	if len(filter) > 0 {
		expr, names, values, err := buildFilterExpr(filter)
		if err != nil {
			return nil, err
		}
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	return &Pages{
		table:     c.table,
		paginator: dynamodb.NewScanPaginator(c.client, input),
	}, nil
}

// buildFilterExpr renders an equality-only filter expression. Fields are
// sorted so the expression is stable for a given filter.
func buildFilterExpr(filter Filter) (string, map[string]string, map[string]types.AttributeValue, error) {
	fields := make([]string, 0, len(filter))
	for f := range filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	clauses := make([]string, 0, len(fields))
	names := make(map[string]string, len(fields))
	values := make(map[string]types.AttributeValue, len(fields))

	for i, field := range fields {
		av, err := attributevalue.Marshal(filter[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal filter value %q: %w", field, err)
		}
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		names[nameKey] = field
		values[valueKey] = av
		clauses = append(clauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	return strings.Join(clauses, " AND "), names, values, nil
}

// Pages iterates over the page groupings of a Fetch. Pagination follows the
// SDK scan paginator: HasMorePages reports whether another page can be
// requested, Next returns it. A page may be empty when the table is.
type Pages struct {
	table     string
	paginator *dynamodb.ScanPaginator
}

// HasMorePages reports whether another page is available.
func (p *Pages) HasMorePages() bool {
	return p.paginator.HasMorePages()
}

// Next returns the next page of records.
func (p *Pages) Next(ctx context.Context) ([]Record, error) {
	page, err := p.paginator.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w: %w", p.table, ErrUnavailable, err)
	}
	records := make([]Record, 0, len(page.Items))
	for _, item := range page.Items {
		records = append(records, Record(item))
	}
	return records, nil
}
