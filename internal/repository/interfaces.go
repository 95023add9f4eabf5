package repository

import (
	"context"
	"errors"

	"portfolio_cms/internal/domain/models"
)

var (
	ErrInvalidToken = errors.New("invalid write token")
)

// ContentRepository контракт бэкенда хранения контента.
// Реализация выбирается один раз на старте процесса и не меняется в рантайме.
//
// Save* всегда перезаписывают сущность целиком: частичных обновлений
// со стороны клиента нет. Токен записи передается вызывающим на каждую
// мутацию; реализации с собственной аутентификацией (Firestore) вправе
// его игнорировать.
type ContentRepository interface {
	ListGalleries(ctx context.Context) (models.Galleries, error)
	GetSiteConfig(ctx context.Context) (models.SiteConfig, error)
	SaveGalleries(ctx context.Context, token string, galleries models.Galleries) error
	SaveSiteConfig(ctx context.Context, token string, cfg models.SiteConfig) error
	GetShader(ctx context.Context) (string, error)
	SaveShader(ctx context.Context, token, src string) error
}
