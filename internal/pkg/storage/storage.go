package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage stores justification evidence photos. The only backend
// today is the local filesystem; the interface keeps the service layer
// agnostic so an object store can be dropped in later.
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the frontend can render the evidence from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
