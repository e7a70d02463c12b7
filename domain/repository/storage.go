package repository

import (
	"context"
	"io"
)

// AssetClass selects the bucket and public URL prefix an object belongs to.
type AssetClass string

const (
	AssetProfilePhoto AssetClass = "profile-photo"
	AssetCoverImage   AssetClass = "cover-image"
	AssetVideo        AssetClass = "video"
)

// IAssetStorage stores and deletes binary assets in external object storage.
// Upload returns the public URL ({prefix}/{filename} per asset class).
// Delete takes the public URL previously returned and removes the object by
// its base name, best effort.
type IAssetStorage interface {
	Upload(ctx context.Context, class AssetClass, filename string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, class AssetClass, publicURL string) error
}
