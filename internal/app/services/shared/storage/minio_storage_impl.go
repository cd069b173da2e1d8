package storage

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
)

type minioStorage struct {
	client *minio.Client
	region string
	Log    *zap.Logger
}

// NewMinioStorage archives payloads to an S3 compatible store. region is
// only used when a bucket has to be created.
func NewMinioStorage(client *minio.Client, region string, logger *zap.Logger) contracts.Storage {
	return &minioStorage{
		client: client,
		region: region,
		Log:    logger,
	}
}

func (m *minioStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return exceptions.ErrMinioEnsureBucket(err, bucketName)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.region})
	if err != nil {
		// Another replica may have won the race.
		if resp := minio.ToErrorResponse(err); resp.Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return exceptions.ErrMinioEnsureBucket(err, bucketName)
	}
	m.Log.Info("minioStorage.EnsureBucket created bucket",
		zap.String(constvars.LoggingBucketKey, bucketName),
	)
	return nil
}

func (m *minioStorage) PutObject(ctx context.Context, object contracts.StorageObject) (string, error) {
	info, err := m.client.PutObject(
		ctx,
		object.Bucket,
		object.Name,
		bytes.NewReader(object.Data),
		int64(len(object.Data)),
		minio.PutObjectOptions{
			ContentType:    object.ContentType,
			UserMetadata:   object.Metadata,
			SendContentMd5: true,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, object.Bucket)
	}

	m.Log.Debug("minioStorage.PutObject stored object",
		zap.String(constvars.LoggingBucketKey, info.Bucket),
		zap.String(constvars.LoggingObjectKey, info.Key),
		zap.Int64(constvars.LoggingSizeKey, info.Size),
	)
	return info.Key, nil
}

type noopStorage struct{}

// NewNoopStorage discards payloads when no object store is configured.
func NewNoopStorage() contracts.Storage {
	return noopStorage{}
}

func (noopStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	return nil
}

func (noopStorage) PutObject(ctx context.Context, object contracts.StorageObject) (string, error) {
	return object.Name, nil
}
