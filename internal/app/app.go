package app

import (
	"fmt"
	"log/slog"

	httpapp "portfolio_cms/internal/app/http"
	"portfolio_cms/internal/config"
	"portfolio_cms/internal/storage/docstore"
	filestorage "portfolio_cms/internal/storage/filestorage"
	httprouters "portfolio_cms/internal/transport/http"
)

// App собирает шлюз хранения: документы, приемник загрузок, HTTP-сервер.
// Вся конфигурация передается явно; глобального состояния нет.
type App struct {
	HTTPServer *httpapp.Server
}

func New(log *slog.Logger, cfg *config.Config) (*App, error) {
	documents, err := docstore.New(cfg.Documents.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("app: init document store: %w", err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("app: init file storage: %w", err)
	}

	routers := httprouters.NewRouter(log, documents, fileStorage, cfg.FileStorage.MaxSize)

	server := httpapp.New(log, cfg.Admin.WriteToken, cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
	}, nil
}
