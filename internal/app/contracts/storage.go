package contracts

import (
	"context"
	"io"
	"time"
)

type Storage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
