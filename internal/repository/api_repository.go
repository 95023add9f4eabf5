package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/fetch"
)

// APIRepository файловый вариант бэкенда: чтение через основной API
// с резервным статическим снапшотом, запись — POST всего документа
// с токеном в query-параметре.
type APIRepository struct {
	client       *http.Client
	apiBase      string
	snapshotBase string
}

func NewAPIRepository(client *http.Client, apiBase, snapshotBase string) *APIRepository {
	if client == nil {
		client = http.DefaultClient
	}

	return &APIRepository{
		client:       client,
		apiBase:      strings.TrimSuffix(apiBase, "/"),
		snapshotBase: strings.TrimSuffix(snapshotBase, "/"),
	}
}

func (r *APIRepository) ListGalleries(ctx context.Context) (models.Galleries, error) {
	const op = "repository.APIRepository.ListGalleries"

	body, err := fetch.Load(ctx, r.client, r.apiBase+"/api/galleries", r.snapshotURL("galleries.json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var galleries models.Galleries
	if err := json.Unmarshal(body, &galleries); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return galleries, nil
}

func (r *APIRepository) GetSiteConfig(ctx context.Context) (models.SiteConfig, error) {
	const op = "repository.APIRepository.GetSiteConfig"

	body, err := fetch.Load(ctx, r.client, r.apiBase+"/api/site", r.snapshotURL("site.json"))
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg models.SiteConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	return cfg, nil
}

func (r *APIRepository) SaveGalleries(ctx context.Context, token string, galleries models.Galleries) error {
	const op = "repository.APIRepository.SaveGalleries"

	body, err := json.Marshal(galleries)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	return r.write(ctx, op, http.MethodPost, "/api/galleries", token, "application/json", body)
}

func (r *APIRepository) SaveSiteConfig(ctx context.Context, token string, cfg models.SiteConfig) error {
	const op = "repository.APIRepository.SaveSiteConfig"

	body, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	return r.write(ctx, op, http.MethodPost, "/api/site", token, "application/json", body)
}

func (r *APIRepository) GetShader(ctx context.Context) (string, error) {
	const op = "repository.APIRepository.GetShader"

	body, err := fetch.Load(ctx, r.client, r.apiBase+"/api/mobileShader", r.snapshotURL("mobile-shader.frag"))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(body), nil
}

func (r *APIRepository) SaveShader(ctx context.Context, token, src string) error {
	const op = "repository.APIRepository.SaveShader"

	return r.write(ctx, op, http.MethodPut, "/api/mobileShader", token, "text/plain", []byte(src))
}

func (r *APIRepository) snapshotURL(file string) string {
	if r.snapshotBase == "" {
		return ""
	}
	return r.snapshotBase + "/" + file
}

func (r *APIRepository) write(ctx context.Context, op, method, path, token, contentType string, body []byte) error {
	u := fmt.Sprintf("%s%s?token=%s", r.apiBase, path, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, msg)
	}

	return nil
}
