package storage

import (
	"context"
	"io"
	"net/url"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient *minio.Client
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, logger *zap.Logger) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		Log:         logger,
	}
}

func (m *minioStorage) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("minioStorage.PutObject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	info, err := m.MinioClient.PutObject(ctx, bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.Log.Error("minioStorage.PutObject error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	m.Log.Info("minioStorage.PutObject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, info.Key),
	)
	return info.Key, nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, url.Values{})
	if err != nil {
		m.Log.Error("minioStorage.GetObjectUrlWithExpiryTime error presigning object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioPresignURL(err, bucketName)
	}

	return presignedURL.String(), nil
}
