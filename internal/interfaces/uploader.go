package interfaces

import "context"

// Uploader is the blob store collaborator. Implementations return the
// public URL and the store-internal path handle of the stored blob; the
// path is what Delete takes later. Deleting a blob that is already gone is
// not an error.
type Uploader interface {
	UploadBytes(ctx context.Context, folder, filename string, b []byte) (url string, path string, err error)
	Delete(ctx context.Context, path string) error
}
