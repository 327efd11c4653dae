// Package storage talks to the object store that holds uploaded images.
// The store is an external collaborator: records only keep the public
// URL it hands back, and deleting a record does not remove its object.
package storage

import "context"

// ObjectStore stores named binary objects and serves them publicly.
type ObjectStore interface {
	// Put uploads an object and returns its public URL.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	// Remove deletes an object. Removing a missing object is not an error.
	Remove(ctx context.Context, name string) error
}
