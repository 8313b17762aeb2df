// Package store provides a thin document-collection layer over DynamoDB.
//
// Each [Collection] wraps one DynamoDB table keyed by a single string
// partition key named "key". The capability set is deliberately small:
//
//   - [Collection.Get] - single record by key
//   - [Collection.Fetch] - equality-filtered scan, grouped into pages
//   - [Collection.Put] - unconditional write, key assigned when omitted
//   - [Collection.Delete] - remove by key
//
// There is no sort or index guarantee; callers that need ordering sort in
// memory. Records are raw attribute-value maps; [MarshalRecord] and
// [UnmarshalRecord] bridge to typed models.
//
// # Errors
//
//   - [ErrNotFound] - the record does not exist
//   - [ErrUnavailable] - the underlying DynamoDB call failed
//
// Delete is idempotent: DynamoDB treats deletion of a missing key as a
// successful no-op, and this package preserves that behavior.
package store
