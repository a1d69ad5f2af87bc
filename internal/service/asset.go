package service

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storage"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
)

const assetEntity = "file"

// Upload is a received file part.
type Upload struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

type AssetService struct {
	server *server.Server
	assets repository.Collection[model.Asset]
	blobs  storage.BlobStore
}

func NewAssetService(s *server.Server, assets repository.Collection[model.Asset], blobs storage.BlobStore) *AssetService {
	return &AssetService{server: s, assets: assets, blobs: blobs}
}

// BlobName is the caller's name plus the original file's extension:
// ("report", "x.pdf") -> "report.pdf".
func BlobName(fileName, originalName string) string {
	return fileName + filepath.Ext(filepath.Base(originalName))
}

// Upload writes the blob, then its metadata document keyed by blob name.
// Reusing a name overwrites both.
func (s *AssetService) Upload(ctx context.Context, fileName string, upload Upload) (string, error) {
	blobName := BlobName(fileName, upload.OriginalName)

	fileURL, err := s.blobs.PutObject(ctx, blobName, upload.Data, upload.ContentType)
	if err != nil {
		return "", errs.NewStoreError("Failed to upload file to Azure Blob Storage", err)
	}

	_, err = s.assets.Set(ctx, blobName, model.Asset{
		FileName:   upload.OriginalName,
		FileURL:    fileURL,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", storeerr.HandleError(err, assetEntity, "Failed to save file metadata")
	}

	s.server.Logger.Info().
		Str("blob", blobName).
		Int("size_bytes", len(upload.Data)).
		Msg("asset uploaded")

	return fileURL, nil
}

// URL returns the recorded URL of a stored blob.
func (s *AssetService) URL(ctx context.Context, blobName string) (string, error) {
	asset, err := s.assets.Get(ctx, blobName)
	if err != nil {
		return "", storeerr.HandleError(err, assetEntity, "Failed to retrieve file URL")
	}
	return asset.FileURL, nil
}

// List returns all asset metadata ordered by blob name. An empty listing is
// reported as not found.
func (s *AssetService) List(ctx context.Context) ([]model.Asset, error) {
	assets, err := s.assets.List(ctx, nil)
	if err != nil {
		return nil, storeerr.HandleError(err, assetEntity, "Failed to retrieve assets")
	}
	if len(assets) == 0 {
		return nil, errs.NewNotFoundError("No assets found", true, nil)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}
