package cloudinary

import (
	"bytes"
	"context"
	"errors"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader implements interfaces.Uploader on Cloudinary. The
// PublicID doubles as the path handle: it is what Delete needs later to
// destroy the blob.
type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

func (u *CloudinaryUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, string, error) {
	res, err := u.cld.Upload.Upload(
		ctx,
		bytes.NewReader(b),
		uploader.UploadParams{
			Folder:       folder,
			PublicID:     filename,
			ResourceType: "image",
		},
	)
	if err != nil {
		return "", "", err
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return "", "", errors.New("cloudinary returned an empty upload result")
	}

	return res.SecureURL, res.PublicID, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, path string) error {
	res, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     path,
		ResourceType: "image",
	})
	if err != nil {
		return err
	}
	// "not found" counts as deleted, destroy is idempotent.
	if res.Result != "ok" && res.Result != "not found" {
		return errors.New("cloudinary destroy: " + res.Result)
	}
	return nil
}
