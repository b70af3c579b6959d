package storage

import (
	"context"
	"io"
)

// Uploader stores a product image and returns the URL clients should use.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (publicURL string, err error)
}
