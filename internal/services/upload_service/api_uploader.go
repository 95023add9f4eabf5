package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"portfolio_cms/internal/repository"
)

// APIUploader шлет файл на приемник загрузок файлового бэкенда
// и возвращает относительный путь из ответа.
type APIUploader struct {
	client  *http.Client
	apiBase string
}

func NewAPIUploader(client *http.Client, apiBase string) *APIUploader {
	if client == nil {
		client = http.DefaultClient
	}

	return &APIUploader{
		client:  client,
		apiBase: strings.TrimSuffix(apiBase, "/"),
	}
}

func (u *APIUploader) Upload(ctx context.Context, token string, file File) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.ContentType != "" {
		hdr.Set("Content-Type", file.ContentType)
	}

	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/api/upload?token=%s", u.apiBase, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", repository.ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	var result struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	return result.Path, nil
}
