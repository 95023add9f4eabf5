package services

import (
	"bytes"
	"context"
	"io"
)

// BlobPutter минимальный контракт облачного объектного хранилища
type BlobPutter interface {
	Put(ctx context.Context, originalName string, data io.Reader) (string, error)
}

// BlobUploader кладет файл в облачный бакет. Токен записи не используется:
// облачный клиент аутентифицируется собственными учетными данными,
// а пустой токен отсекается раньше, в UploadService.
type BlobUploader struct {
	store BlobPutter
}

func NewBlobUploader(store BlobPutter) *BlobUploader {
	return &BlobUploader{store: store}
}

func (u *BlobUploader) Upload(ctx context.Context, _ string, file File) (string, error) {
	return u.store.Put(ctx, file.Name, bytes.NewReader(file.Data))
}
