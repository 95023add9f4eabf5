package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader минимальный валидный заголовок PNG для сниффера
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func multipartFile(t *testing.T, fieldName, fileName, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	fh := req.MultipartForm.File[fieldName][0]
	if contentType != "" {
		fh.Header.Set("Content-Type", contentType)
	}
	return fh
}

func TestLocalFileStorage_SaveImage(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFileStorage(dir, "/uploads")
	require.NoError(t, err)

	fh := multipartFile(t, "file", "photo.png", "", pngHeader)

	relPath, size, err := fs.Save(context.Background(), fh)
	require.NoError(t, err)

	assert.EqualValues(t, len(pngHeader), size)
	assert.True(t, strings.HasPrefix(relPath, "images/"), "png must be routed to images/, got %q", relPath)
	assert.FileExists(t, fs.GetFullPath(relPath))
}

func TestLocalFileStorage_SaveVideoByDeclaredType(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFileStorage(dir, "/uploads")
	require.NoError(t, err)

	// Содержимое не распознается сниффером, берем заявленный Content-Type
	fh := multipartFile(t, "file", "clip.bin", "video/mp4", []byte{0x00, 0x01, 0x02, 0x03})

	relPath, _, err := fs.Save(context.Background(), fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "videos/"), "declared video must be routed to videos/, got %q", relPath)
}

func TestLocalFileStorage_SniffedTypeWinsOverExtension(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFileStorage(dir, "/uploads")
	require.NoError(t, err)

	// Расширение врет: содержимое — PNG
	fh := multipartFile(t, "file", "actually-image.mp4", "", pngHeader)

	relPath, _, err := fs.Save(context.Background(), fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "images/"), "content type must win over extension, got %q", relPath)
}

func TestObjectName(t *testing.T) {
	name := ObjectName("My Photo.JPG")

	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f-]{36}\.jpg$`), name)
}

func TestSubDirForMIME(t *testing.T) {
	assert.Equal(t, "videos", SubDirForMIME("video/mp4"))
	assert.Equal(t, "images", SubDirForMIME("image/png"))
	assert.Equal(t, "images", SubDirForMIME("application/octet-stream"))
}

func TestLocalFileStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFileStorage(dir, "/uploads")
	require.NoError(t, err)

	fh := multipartFile(t, "file", "photo.png", "", pngHeader)
	relPath, _, err := fs.Save(context.Background(), fh)
	require.NoError(t, err)

	require.NoError(t, fs.Delete(context.Background(), relPath))

	_, statErr := os.Stat(fs.GetFullPath(relPath))
	assert.True(t, os.IsNotExist(statErr))
}
