package services

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/logger/sl"
	"portfolio_cms/internal/repository"
)

// ContentService политика ошибок над бэкендом: чтение деградирует до
// пустого состояния с записью диагностики в лог (вызывающий обязан
// переживать пустой старт), ошибка записи всегда доводится до вызывающего
// как отдельный отказ — молчаливо принятых сохранений не бывает.
type ContentService struct {
	log  *slog.Logger
	repo repository.ContentRepository
}

func NewContentService(log *slog.Logger, repo repository.ContentRepository) *ContentService {
	return &ContentService{
		log:  log,
		repo: repo,
	}
}

// ListGalleries возвращает все галереи; при ошибке чтения — пустую карту
func (s *ContentService) ListGalleries(ctx context.Context) models.Galleries {
	const op = "content_service.ListGalleries"

	log := s.log.With(slog.String("op", op))

	galleries, err := s.repo.ListGalleries(ctx)
	if err != nil {
		log.Error("failed to load galleries, starting empty", sl.Err(err))
		return models.Galleries{}
	}

	if galleries == nil {
		galleries = models.Galleries{}
	}

	return galleries
}

// GetSiteConfig возвращает нормализованную конфигурацию сайта;
// при ошибке чтения — конфигурацию по умолчанию
func (s *ContentService) GetSiteConfig(ctx context.Context) models.SiteConfig {
	const op = "content_service.GetSiteConfig"

	log := s.log.With(slog.String("op", op))

	cfg, err := s.repo.GetSiteConfig(ctx)
	if err != nil {
		log.Error("failed to load site config, starting empty", sl.Err(err))
		return models.SiteConfig{}
	}

	cfg.Normalize()

	return cfg
}

func (s *ContentService) SaveGalleries(ctx context.Context, token string, galleries models.Galleries) error {
	const op = "content_service.SaveGalleries"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("galleries", len(galleries)),
	)

	if err := s.repo.SaveGalleries(ctx, token, galleries); err != nil {
		log.Error("failed to save galleries", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("galleries saved")

	return nil
}

func (s *ContentService) SaveSiteConfig(ctx context.Context, token string, cfg models.SiteConfig) error {
	const op = "content_service.SaveSiteConfig"

	log := s.log.With(slog.String("op", op))

	cfg.Normalize()

	if err := s.repo.SaveSiteConfig(ctx, token, cfg); err != nil {
		log.Error("failed to save site config", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("site config saved")

	return nil
}

func (s *ContentService) GetShader(ctx context.Context) string {
	const op = "content_service.GetShader"

	src, err := s.repo.GetShader(ctx)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to load shader source", sl.Err(err))
		return ""
	}

	return src
}

func (s *ContentService) SaveShader(ctx context.Context, token, src string) error {
	const op = "content_service.SaveShader"

	if err := s.repo.SaveShader(ctx, token, src); err != nil {
		s.log.With(slog.String("op", op)).Error("failed to save shader source", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
