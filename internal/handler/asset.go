package handler

import (
	"io"
	"net/http"
	"net/url"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadFormField is the multipart part holding the file.
const UploadFormField = "file"

type AssetHandler struct {
	Handler
	assets *service.AssetService
}

func NewAssetHandler(s *server.Server, assets *service.AssetService) *AssetHandler {
	return &AssetHandler{Handler: NewHandler(s), assets: assets}
}

// UploadAsset stores the "file" part under fileName plus the part's
// extension.
func (h *AssetHandler) UploadAsset(c echo.Context, req *model.UploadAssetRequest) (*model.UploadAssetResponse, error) {
	fileHeader, err := c.FormFile(UploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errs.NewBadRequestError(model.MissingUploadMessage, true, nil, nil, nil)
		}
		return nil, errs.NewBadRequestError("Malformed upload", true, nil, nil, nil).WithCause(err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errs.NewStoreError("Failed to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewStoreError("Failed to read uploaded file", err)
	}

	fileURL, err := h.assets.Upload(c.Request().Context(), req.FileName, service.Upload{
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get(echo.HeaderContentType),
		Data:         data,
	})
	if err != nil {
		return nil, err
	}

	return &model.UploadAssetResponse{Message: "File uploaded successfully", FileURL: fileURL}, nil
}

func (h *AssetHandler) GetAssetURL(c echo.Context, req *model.AssetNameRequest) (*model.AssetURLResponse, error) {
	name, err := url.PathUnescape(req.FileName)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid file name", true, nil, nil, nil)
	}

	fileURL, err := h.assets.URL(c.Request().Context(), name)
	if err != nil {
		return nil, err
	}
	return &model.AssetURLResponse{FileURL: fileURL}, nil
}

func (h *AssetHandler) ListAssets(c echo.Context, _ *model.ListAssetsRequest) (*model.ListAssetsResponse, error) {
	assets, err := h.assets.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ListAssetsResponse{Assets: assets}, nil
}
