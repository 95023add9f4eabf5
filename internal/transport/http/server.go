package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/logger/sl"
	"portfolio_cms/internal/metrics"
	"portfolio_cms/internal/storage"
	"portfolio_cms/internal/storage/docstore"
	"portfolio_cms/internal/transport/http/dto"
	"portfolio_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// DocumentStore серверное хранилище двух JSON-документов и шейдера
type DocumentStore interface {
	ReadDocument(ctx context.Context, name string) ([]byte, error)
	WriteDocument(ctx context.Context, name string, data []byte) error
	ReadShader(ctx context.Context) (string, error)
	WriteShader(ctx context.Context, src string) error
}

// FileStorage приемник загрузок
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, int64, error)
	BaseURL() string
}

type Routers struct {
	log         *slog.Logger
	Documents   DocumentStore
	FileStorage FileStorage
	MaxFileSize int64
}

func NewRouter(log *slog.Logger, documents DocumentStore, fileStorage FileStorage, maxFileSize int64) *Routers {
	return &Routers{
		log:         log,
		Documents:   documents,
		FileStorage: fileStorage,
		MaxFileSize: maxFileSize,
	}
}

// GetGalleries возвращает документ галерей как он был записан;
// отсутствие документа — пустое отображение, не ошибка
func (r *Routers) GetGalleries(c echo.Context) error {
	const op = "http.routers.GetGalleries"

	body, err := r.Documents.ReadDocument(c.Request().Context(), docstore.DocGalleries)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return c.JSONBlob(http.StatusOK, []byte(`{}`))
		}

		r.log.With(slog.String("op", op)).Error("failed to read galleries document", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrReadFailed)
	}

	return c.JSONBlob(http.StatusOK, body)
}

// SaveGalleries полная перезапись документа галерей. Слияния по полям нет:
// последний записавший побеждает безусловно.
func (r *Routers) SaveGalleries(c echo.Context) error {
	const op = "http.routers.SaveGalleries"

	log := r.log.With(slog.String("op", op))

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidBody)
	}

	var galleries models.Galleries
	if err := json.Unmarshal(body, &galleries); err != nil {
		log.Warn("rejected galleries document", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidBody)
	}

	// Сохраняем присланные байты как есть: чтение после записи
	// возвращает документ байт-в-байт
	if err := r.Documents.WriteDocument(c.Request().Context(), docstore.DocGalleries, body); err != nil {
		log.Error("failed to write galleries document", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrWriteFailed)
	}

	log.Info("galleries document replaced", slog.Int("galleries", len(galleries)))

	return c.NoContent(http.StatusOK)
}

func (r *Routers) GetSite(c echo.Context) error {
	const op = "http.routers.GetSite"

	body, err := r.Documents.ReadDocument(c.Request().Context(), docstore.DocSite)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return c.JSONBlob(http.StatusOK, []byte(`{}`))
		}

		r.log.With(slog.String("op", op)).Error("failed to read site document", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrReadFailed)
	}

	return c.JSONBlob(http.StatusOK, body)
}

func (r *Routers) SaveSite(c echo.Context) error {
	const op = "http.routers.SaveSite"

	log := r.log.With(slog.String("op", op))

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidBody)
	}

	var cfg models.SiteConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		log.Warn("rejected site document", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidBody)
	}

	if err := c.Validate(&cfg); err != nil {
		log.Warn("site document failed validation", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_body", err.Error()))
	}

	if err := r.Documents.WriteDocument(c.Request().Context(), docstore.DocSite, body); err != nil {
		log.Error("failed to write site document", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrWriteFailed)
	}

	log.Info("site document replaced")

	return c.NoContent(http.StatusOK)
}

// Upload принимает один multipart-файл и возвращает его адресуемый путь.
// Токен проверяется промежуточным слоем до разбора тела: неавторизованная
// загрузка не доходит до диска.
func (r *Routers) Upload(c echo.Context) error {
	const op = "http.routers.Upload"

	log := r.log.With(slog.String("op", op))

	metrics.UploadsTotal.Inc()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsFailed.Inc()
		return c.JSON(http.StatusBadRequest, response.ErrNoFile)
	}

	if r.MaxFileSize > 0 && fileHeader.Size > r.MaxFileSize {
		metrics.UploadsFailed.Inc()
		log.Warn("rejected oversized upload",
			sl.Err(storage.ErrFileTooLarge),
			slog.String("filename", fileHeader.Filename),
			slog.Int64("size", fileHeader.Size),
		)
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	}

	relPath, size, err := r.FileStorage.Save(c.Request().Context(), fileHeader)
	if err != nil {
		metrics.UploadsFailed.Inc()
		log.Error("failed to save uploaded file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrWriteFailed)
	}

	log.Info("file uploaded",
		slog.String("path", relPath),
		slog.Int64("size", size),
	)

	return c.JSON(http.StatusOK, dto.UploadResponse{
		Path: r.FileStorage.BaseURL() + "/" + relPath,
	})
}

func (r *Routers) GetShader(c echo.Context) error {
	const op = "http.routers.GetShader"

	src, err := r.Documents.ReadShader(c.Request().Context())
	if err != nil {
		r.log.With(slog.String("op", op)).Error("failed to read shader source", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrReadFailed)
	}

	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(src))
}

func (r *Routers) SaveShader(c echo.Context) error {
	const op = "http.routers.SaveShader"

	log := r.log.With(slog.String("op", op))

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidBody)
	}

	if err := r.Documents.WriteShader(c.Request().Context(), string(body)); err != nil {
		log.Error("failed to write shader source", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrWriteFailed)
	}

	log.Info("shader source replaced", slog.Int("bytes", len(body)))

	return c.NoContent(http.StatusOK)
}

func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
