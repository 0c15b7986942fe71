package storage

import (
	"context"
	"time"
)

// ObjectStore is the contract for the external file-store collaborator.
type ObjectStore interface {
	// Put uploads an object and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// SignedURL issues a time-limited download URL for an existing object.
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	Delete(ctx context.Context, key string) error
}
