// Package docstore хранит контент сайта на диске: два JSON-документа
// (галереи и конфигурация сайта) плюс текстовый исходник шейдера.
// Документы перезаписываются целиком и атомарно; частичных записей нет.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"portfolio_cms/internal/storage"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DocGalleries = "galleries"
	DocSite      = "site"

	shaderFile = "mobile-shader.frag"
)

// Store файловое хранилище документов с кешем чтения
type Store struct {
	baseDir string
	cache   *gocache.Cache
}

func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("docstore: create base dir: %w", err)
	}

	return &Store{
		baseDir: baseDir,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// ReadDocument возвращает документ в том виде, в каком он был записан
func (s *Store) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(name); ok {
		return cached.([]byte), nil
	}

	data, err := os.ReadFile(s.documentPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("docstore: read %s: %w", name, err)
	}

	s.cache.Set(name, data, gocache.NoExpiration)

	return data, nil
}

// WriteDocument атомарно подменяет документ: запись во временный файл
// рядом с целевым, затем rename. Читатели никогда не видят полузаписанный
// документ, при ошибке прежнее содержимое остается нетронутым.
func (s *Store) WriteDocument(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.writeAtomic(s.documentPath(name), data); err != nil {
		return fmt.Errorf("docstore: write %s: %w", name, err)
	}

	s.cache.Set(name, data, gocache.NoExpiration)

	return nil
}

func (s *Store) ReadShader(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if cached, ok := s.cache.Get(shaderFile); ok {
		return cached.(string), nil
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, shaderFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", storage.ErrShaderNotFound
		}
		return "", fmt.Errorf("docstore: read shader: %w", err)
	}

	s.cache.Set(shaderFile, string(data), gocache.NoExpiration)

	return string(data), nil
}

func (s *Store) WriteShader(ctx context.Context, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.writeAtomic(filepath.Join(s.baseDir, shaderFile), []byte(src)); err != nil {
		return fmt.Errorf("docstore: write shader: %w", err)
	}

	s.cache.Set(shaderFile, src, gocache.NoExpiration)

	return nil
}

func (s *Store) documentPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return nil
}
