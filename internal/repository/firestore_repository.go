package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/barrier"
	"portfolio_cms/internal/storage"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	galleriesCollection = "galleries"
	configCollection    = "config"
	siteDocument        = "site"
	shaderDocument      = "shader"
)

// galleryDoc документ одной галереи в коллекции galleries
type galleryDoc struct {
	Items []models.Slide `firestore:"items"`
}

type shaderDoc struct {
	Source string `firestore:"source"`
}

// FirestoreRepository облачный вариант бэкенда. Клиент поднимается
// асинхронно за барьером готовности; каждая операция дожидается барьера
// с ограниченным таймаутом вместо опроса.
type FirestoreRepository struct {
	client       *firestore.Client
	ready        *barrier.Barrier
	readyTimeout time.Duration
}

func NewFirestoreRepository(projectID, credentialsFile string, readyTimeout time.Duration) *FirestoreRepository {
	r := &FirestoreRepository{
		ready:        barrier.New(),
		readyTimeout: readyTimeout,
	}

	go func() {
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		client, err := firestore.NewClient(context.Background(), projectID, opts...)
		if err != nil {
			r.ready.Resolve(fmt.Errorf("firestore: create client: %w", err))
			return
		}

		r.client = client
		r.ready.Resolve(nil)
	}()

	return r
}

func (r *FirestoreRepository) ListGalleries(ctx context.Context) (models.Galleries, error) {
	const op = "repository.FirestoreRepository.ListGalleries"

	if err := r.await(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries := models.Galleries{}

	iter := r.client.Collection(galleriesCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var gd galleryDoc
		if err := doc.DataTo(&gd); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", op, doc.Ref.ID, err)
		}

		galleries[doc.Ref.ID] = gd.Items
	}

	return galleries, nil
}

func (r *FirestoreRepository) GetSiteConfig(ctx context.Context) (models.SiteConfig, error) {
	const op = "repository.FirestoreRepository.GetSiteConfig"

	if err := r.await(ctx); err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := r.client.Collection(configCollection).Doc(siteDocument).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.SiteConfig{}, fmt.Errorf("%s: %w", op, storage.ErrDocumentNotFound)
		}
		return models.SiteConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg models.SiteConfig
	if err := doc.DataTo(&cfg); err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	return cfg, nil
}

// SaveGalleries пишет каждую галерею независимым merge-запросом: поле items
// подменяется атомарно для каждого ключа, остальные поля документа
// переживают запись. Запись нескольких галерей не является транзакцией:
// при частичном сбое часть ключей останется обновленной, отката нет.
func (r *FirestoreRepository) SaveGalleries(ctx context.Context, _ string, galleries models.Galleries) error {
	const op = "repository.FirestoreRepository.SaveGalleries"

	if err := r.await(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var errs []error
	for key, slides := range galleries {
		_, err := r.client.Collection(galleriesCollection).Doc(key).Set(ctx,
			galleryDoc{Items: slides},
			firestore.Merge(firestore.FieldPath{"items"}),
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: key %q: %w", op, key, err))
		}
	}

	return errors.Join(errs...)
}

// SaveSiteConfig один merge-запрос всего документа конфигурации
func (r *FirestoreRepository) SaveSiteConfig(ctx context.Context, _ string, cfg models.SiteConfig) error {
	const op = "repository.FirestoreRepository.SaveSiteConfig"

	if err := r.await(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := siteConfigData(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.client.Collection(configCollection).Doc(siteDocument).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *FirestoreRepository) GetShader(ctx context.Context) (string, error) {
	const op = "repository.FirestoreRepository.GetShader"

	if err := r.await(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	doc, err := r.client.Collection(configCollection).Doc(shaderDocument).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%s: %w", op, storage.ErrShaderNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var sd shaderDoc
	if err := doc.DataTo(&sd); err != nil {
		return "", fmt.Errorf("%s: decode: %w", op, err)
	}

	return sd.Source, nil
}

func (r *FirestoreRepository) SaveShader(ctx context.Context, _ string, src string) error {
	const op = "repository.FirestoreRepository.SaveShader"

	if err := r.await(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.client.Collection(configCollection).Doc(shaderDocument).Set(ctx, shaderDoc{Source: src}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *FirestoreRepository) Close() error {
	if err := r.ready.Wait(context.Background(), r.readyTimeout); err != nil {
		return nil
	}
	return r.client.Close()
}

func (r *FirestoreRepository) await(ctx context.Context) error {
	return r.ready.Wait(ctx, r.readyTimeout)
}

// siteConfigData переводит конфигурацию в map: MergeAll в firestore
// принимает только map-данные
func siteConfigData(cfg models.SiteConfig) (map[string]interface{}, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	return data, nil
}
