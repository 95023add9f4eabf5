package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// FileStorage интерфейс для работы с файловым хранилищем загрузок
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

// Save сохраняет загруженный файл под именем {timestamp}_{uuid}{ext}.
// Подкаталог (images или videos) выбирается по содержимому файла,
// а не по расширению.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	subDir, err := detectSubDir(src, file)
	if err != nil {
		return "", 0, err
	}

	relPath := filepath.Join(subDir, ObjectName(file.Filename))
	filePath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return filepath.ToSlash(relPath), size, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath := filepath.Join(s.baseDir, filePath)
	return os.Remove(fullPath)
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

// ObjectName генерирует имя объекта вида {timestamp}_{uuid}{ext}
func ObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// SubDirForMIME возвращает префикс назначения для MIME-типа
func SubDirForMIME(mime string) string {
	if strings.HasPrefix(mime, "video/") {
		return "videos"
	}
	return "images"
}

func detectSubDir(src multipart.File, file *multipart.FileHeader) (string, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to sniff mime type: %w", err)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind source file: %w", err)
	}

	detected := mtype.String()
	if detected == "application/octet-stream" {
		// Сниффер не распознал формат — используем заявленный клиентом тип
		if declared := file.Header.Get("Content-Type"); declared != "" {
			detected = declared
		}
	}

	return SubDirForMIME(detected), nil
}
