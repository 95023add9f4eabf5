package repository

import (
	"fmt"
	"net/http"

	"portfolio_cms/internal/config"
)

// New выбирает реализацию бэкенда по конфигурации. Выбор происходит
// один раз на старте; переключения в рантайме нет.
func New(cfg config.BackendConfig) (ContentRepository, error) {
	switch cfg.Kind {
	case config.BackendFile:
		return NewAPIRepository(http.DefaultClient, cfg.APIBase, cfg.SnapshotBase), nil
	case config.BackendFirestore:
		return NewFirestoreRepository(cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, cfg.ReadyTimeout), nil
	default:
		return nil, fmt.Errorf("repository: unknown backend kind %q", cfg.Kind)
	}
}
