// Package noop provides an ObjectStorage that discards uploads. Used when
// no archive bucket is configured.
package noop

import (
	"context"

	"clausegenie/internal/port"
)

type noopStorage struct{}

// NewStorage creates a no-op ObjectStorage.
func NewStorage() port.ObjectStorage {
	return &noopStorage{}
}

func (n *noopStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	return &port.UploadOutput{Location: "noop://" + input.Key}, nil
}
