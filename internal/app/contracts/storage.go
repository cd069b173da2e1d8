package contracts

import (
	"context"
)

// StorageObject is one archived payload. Metadata travels as object user
// metadata and must be ASCII.
type StorageObject struct {
	Bucket      string
	Name        string
	ContentType string
	Data        []byte
	Metadata    map[string]string
}

// Storage archives Binary payloads outside the clinical data repository.
type Storage interface {
	// EnsureBucket creates bucketName when it does not exist yet.
	EnsureBucket(ctx context.Context, bucketName string) error
	// PutObject returns the stored object name.
	PutObject(ctx context.Context, object StorageObject) (string, error)
}
