package model

import "github.com/deppfellow/portfolio-api/internal/validation"

// MissingUploadMessage is reported when the file part or the name is absent.
const MissingUploadMessage = "No file uploaded or no file name provided"

// UploadAssetRequest carries the logical name of a multipart upload. The
// file part itself is read by the handler.
type UploadAssetRequest struct {
	FileName string `json:"fileName"`
}

func (*UploadAssetRequest) Rules() validation.Rules {
	return validation.Rules{
		{
			Field:      "fileName",
			Checks:     []validation.Check{validation.NotEmpty(MissingUploadMessage)},
			Sanitizers: []validation.Sanitizer{validation.Trim},
		},
	}
}

// AssetNameRequest addresses an asset by its stored blob name.
type AssetNameRequest struct {
	FileName string `param:"fileName" json:"-"`
}

func (*AssetNameRequest) Rules() validation.Rules { return nil }

// ListAssetsRequest has no parameters.
type ListAssetsRequest struct{}

func (*ListAssetsRequest) Rules() validation.Rules { return nil }

type UploadAssetResponse struct {
	Message string `json:"message"`
	FileURL string `json:"fileUrl"`
}

type AssetURLResponse struct {
	FileURL string `json:"fileUrl"`
}

type ListAssetsResponse struct {
	Assets []Asset `json:"assets"`
}
