// Package storage is the blob store adapter. Uploaded assets are written to
// a single Azure Blob Storage container and addressed by blob name.
package storage

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// BlobStore stores objects by name and returns their public URL.
type BlobStore interface {
	// PutObject writes data under name, replacing any existing object.
	PutObject(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Ping reports whether the container is reachable.
	Ping(ctx context.Context) error
}

// AzureBlobStore is a BlobStore backed by one Azure container.
type AzureBlobStore struct {
	container *container.Client
	logger    *zerolog.Logger
}

var _ BlobStore = (*AzureBlobStore)(nil)

// NewAzureBlobStore connects to the configured container and verifies it
// exists, so a bad connection string or container name fails at startup.
func NewAzureBlobStore(ctx context.Context, cfg *config.StorageConfig, logger *zerolog.Logger) (*AzureBlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blob service client")
	}

	store := &AzureBlobStore{
		container: client.ServiceClient().NewContainerClient(cfg.Container),
		logger:    logger,
	}

	if err := store.Ping(ctx); err != nil {
		return nil, err
	}

	logger.Info().Str("container", cfg.Container).Msg("connected to blob storage")

	return store, nil
}

func (s *AzureBlobStore) PutObject(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	blockBlob := s.container.NewBlockBlobClient(name)

	opts := &blockblob.UploadBufferOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	if _, err := blockBlob.UploadBuffer(ctx, data, opts); err != nil {
		return "", errors.Wrapf(err, "upload blob %s", name)
	}

	s.logger.Debug().
		Str("blob", name).
		Int("size_bytes", len(data)).
		Msg("blob uploaded")

	return blockBlob.URL(), nil
}

func (s *AzureBlobStore) Ping(ctx context.Context) error {
	if _, err := s.container.GetProperties(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerNotFound) {
			return errors.Wrap(err, "blob container does not exist")
		}
		return errors.Wrap(err, "blob storage unreachable")
	}
	return nil
}
