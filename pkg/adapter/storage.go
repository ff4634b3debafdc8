package adapter

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Storage is the interface for companion backup storage
type Storage interface {
	// Put returns a writer saving an object under key. The object is
	// committed when the writer is closed.
	Put(ctx context.Context, key, contentType string) (io.WriteCloser, error)
	// Get opens the object stored under key. A missing object is reported
	// as model.ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Close() error
}

// storageClient implements Storage interface using Cloud Storage
type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage client
func NewStorage(ctx context.Context, bucketName string) (Storage, error) {
	if bucketName == "" {
		return nil, goerr.Wrap(model.ErrValidation, "bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Put(ctx context.Context, key, contentType string) (io.WriteCloser, error) {
	writer := s.client.Bucket(s.bucketName).Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	return writer, nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.client.Bucket(s.bucketName).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, goerr.Wrap(model.ErrNotFound, "backup object not found",
			goerr.V("bucket", s.bucketName),
			goerr.V("key", key),
		)
	}
	if err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to read from storage", goerr.V("key", key))
	}

	return reader, nil
}

func (s *storageClient) Close() error {
	return s.client.Close()
}
