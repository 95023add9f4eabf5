package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio_cms/internal/lib/logger/sl"

	"golang.org/x/sync/errgroup"
)

var ErrNoToken = errors.New("upload aborted: write token is missing")

// File один загружаемый файл
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader целевое хранилище загрузок (API-шлюз или облачный бакет)
type Uploader interface {
	Upload(ctx context.Context, token string, file File) (string, error)
}

// UploadService отправляет пачку файлов параллельно и возвращает
// адресуемые ссылки в порядке входного списка.
//
// Пачка неделима: отказ любой загрузки означает отказ всей пачки,
// частичный результат вызывающему не возвращается. Это осознанное
// ограничение, а не недосмотр.
type UploadService struct {
	log      *slog.Logger
	uploader Uploader
}

func NewUploadService(log *slog.Logger, uploader Uploader) *UploadService {
	return &UploadService{
		log:      log,
		uploader: uploader,
	}
}

// UploadAll загружает файлы конкурентно. Без токена — ни одного сетевого вызова.
func (s *UploadService) UploadAll(ctx context.Context, token string, files []File) ([]string, error) {
	const op = "upload_service.UploadAll"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("files", len(files)),
	)

	if token == "" {
		log.Warn("no write token supplied, aborting before any upload")
		return nil, ErrNoToken
	}

	if len(files) == 0 {
		return []string{}, nil
	}

	refs := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			ref, err := s.uploader.Upload(gctx, token, f)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.Name, err)
			}
			refs[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("upload batch failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("upload batch complete")

	return refs, nil
}
