// Package blobstore пишет медиафайлы в облачное объектное хранилище
// для варианта с облачным бэкендом.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	filestorage "portfolio_cms/internal/storage/filestorage"

	gcs "cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/api/option"
)

// BlobStorage хранилище объектов: кладет файл и возвращает полный публичный URL
type BlobStorage struct {
	client *gcs.Client
	bucket string
}

func New(ctx context.Context, bucket, credentialsFile string) (*BlobStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("blobstore: create client: %w", err)
	}

	return &BlobStorage{
		client: client,
		bucket: bucket,
	}, nil
}

// Put записывает объект под именем {images|videos}/{timestamp}_{uuid}{ext},
// выбирая префикс по содержимому, и возвращает публичный адрес объекта.
func (s *BlobStorage) Put(ctx context.Context, originalName string, data io.Reader) (string, error) {
	head, err := io.ReadAll(io.LimitReader(data, 3072))
	if err != nil {
		return "", fmt.Errorf("blobstore: read head: %w", err)
	}

	mtype := mimetype.Detect(head)
	objectName := filestorage.SubDirForMIME(mtype.String()) + "/" + filestorage.ObjectName(originalName)

	obj := s.client.Bucket(s.bucket).Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = mtype.String()

	if _, err := w.Write(head); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("blobstore: write %s: %w", objectName, err)
	}
	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("blobstore: write %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("blobstore: finalize %s: %w", objectName, err)
	}

	return PublicURL(s.bucket, objectName), nil
}

func (s *BlobStorage) Close() error {
	return s.client.Close()
}

// PublicURL собирает полный адрес объекта в бакете
func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.TrimPrefix(objectName, "/"))
}
