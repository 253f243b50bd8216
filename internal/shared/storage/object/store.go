package object

import (
	"context"
	"io"
)

// Store is the contract for persisting and retrieving generated resume
// documents.
type Store interface {
	Save(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
