// Package storage defines the file storage used to persist uploads. Uploads
// are written once under a unique name and read back once; nothing is ever
// updated or cleaned up by the service.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// Storage persists upload blobs. Implementations must be safe for concurrent
// use; callers guarantee names are unique so writes never collide.
type Storage interface {
	// Save writes data under name and returns the path it can be read back from.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Read returns the bytes previously saved at path.
	Read(ctx context.Context, path string) ([]byte, error)
}
