package port

import (
	"context"
	"io"
)

// UploadInput carries the data needed for an object upload.
type UploadInput struct {
	Bucket      string
	Key         string
	ContentType string
	Body        io.Reader
}

// UploadOutput contains the result of an object upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts write-only document archival.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
