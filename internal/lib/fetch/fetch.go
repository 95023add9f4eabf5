// Package fetch загружает документ с основного адреса с однократным
// переключением на резервный (обычно статический снапшот в бандле).
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Load пробует primary; при сетевой ошибке или не-2xx ответе делает ровно одну
// попытку по fallback. Ошибка fallback уходит вызывающему как есть — без
// повторов и backoff.
func Load(ctx context.Context, client *http.Client, primary, fallback string) ([]byte, error) {
	const op = "fetch.Load"

	if client == nil {
		client = http.DefaultClient
	}

	body, primaryErr := get(ctx, client, primary)
	if primaryErr == nil {
		return body, nil
	}

	if fallback == "" {
		return nil, fmt.Errorf("%s: primary %q failed: %w", op, primary, primaryErr)
	}

	body, fallbackErr := get(ctx, client, fallback)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%s: primary %q failed (%v), fallback %q failed: %w",
			op, primary, primaryErr, fallback, fallbackErr)
	}

	return body, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
