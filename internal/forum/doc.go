// Package forum implements the domain services of the forum backend: user
// signup and lookup, thread creation and listing, post creation, listing and
// author-scoped deletion. All state lives in document collections provided
// by the store package; services hold no state beyond their collection
// handles.
//
// Failures are classified with sentinel errors ([ErrConflict],
// [ErrUnauthorized], [ErrNotFound]); the transport layer maps them to status
// codes with errors.Is.
//
// Known limitation: uniqueness of user emails and thread names is enforced
// by a scan-before-insert check. The check and the insert are not atomic, so
// two concurrent creates with the same value can both succeed.
package forum
