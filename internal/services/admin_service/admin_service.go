package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio_cms/internal/domain/models"
	"portfolio_cms/internal/lib/logger/sl"
)

var (
	ErrSaveAbandoned   = errors.New("save abandoned: no write token supplied")
	ErrUnknownGallery  = errors.New("unknown gallery key")
	ErrGalleryExists   = errors.New("gallery key already exists")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ContentProvider читает и сохраняет контент через выбранный бэкенд
type ContentProvider interface {
	ListGalleries(ctx context.Context) models.Galleries
	GetSiteConfig(ctx context.Context) models.SiteConfig
	SaveGalleries(ctx context.Context, token string, galleries models.Galleries) error
	SaveSiteConfig(ctx context.Context, token string, cfg models.SiteConfig) error
}

// AdminSession черновик админ-сессии: галереи и конфигурация сайта
// загружаются целиком на старте сессии, правятся только в памяти
// и сохраняются явным SaveAll — целиком, без частичных записей.
//
// Сессия не потокобезопасна: одна сессия — один оператор.
type AdminSession struct {
	log     *slog.Logger
	content ContentProvider

	galleries models.Galleries
	site      models.SiteConfig
}

func NewAdminSession(log *slog.Logger, content ContentProvider) *AdminSession {
	return &AdminSession{
		log:       log,
		content:   content,
		galleries: models.Galleries{},
	}
}

// Load наполняет черновик; пустое состояние при недоступном бэкенде — норма
func (s *AdminSession) Load(ctx context.Context) {
	const op = "admin_service.Load"

	s.galleries = s.content.ListGalleries(ctx).Clone()
	s.site = s.content.GetSiteConfig(ctx).Clone()

	s.log.With(slog.String("op", op)).Info("draft loaded",
		slog.Int("galleries", len(s.galleries)),
		slog.Int("sections", len(s.site.Sections)),
	)
}

func (s *AdminSession) Galleries() models.Galleries { return s.galleries }
func (s *AdminSession) SiteConfig() models.SiteConfig { return s.site }

func (s *AdminSession) AddGallery(key string) error {
	if key == "" {
		return fmt.Errorf("gallery key is required")
	}
	if _, ok := s.galleries[key]; ok {
		return ErrGalleryExists
	}

	s.galleries[key] = []models.Slide{}

	return nil
}

func (s *AdminSession) RemoveGallery(key string) error {
	if _, ok := s.galleries[key]; !ok {
		return ErrUnknownGallery
	}

	delete(s.galleries, key)

	return nil
}

// AppendSlide добавляет слайд в конец; позиции остальных не меняются
func (s *AdminSession) AppendSlide(key string, slide models.Slide) error {
	if _, ok := s.galleries[key]; !ok {
		return ErrUnknownGallery
	}

	s.galleries[key] = append(s.galleries[key], slide)

	return nil
}

// ReplaceSlide заменяет слайд на месте, позиция сохраняется
func (s *AdminSession) ReplaceSlide(key string, index int, slide models.Slide) error {
	slides, ok := s.galleries[key]
	if !ok {
		return ErrUnknownGallery
	}
	if index < 0 || index >= len(slides) {
		return ErrIndexOutOfRange
	}

	slides[index] = slide

	return nil
}

// RemoveSlide удаляет слайд; последующие позиции сдвигаются на единицу —
// индекс чисто презентационный и нигде не хранится
func (s *AdminSession) RemoveSlide(key string, index int) error {
	slides, ok := s.galleries[key]
	if !ok {
		return ErrUnknownGallery
	}
	if index < 0 || index >= len(slides) {
		return ErrIndexOutOfRange
	}

	s.galleries[key] = append(slides[:index], slides[index+1:]...)

	return nil
}

func (s *AdminSession) SetBio(bio string)       { s.site.Bio = bio }
func (s *AdminSession) SetAPIBase(base string)  { s.site.APIBase = base }
func (s *AdminSession) SetShaderURL(url string) { s.site.ShaderURL = url }

func (s *AdminSession) AddContact(c models.Contact) {
	s.site.Contacts = append(s.site.Contacts, c)
}

func (s *AdminSession) RemoveContact(index int) error {
	if index < 0 || index >= len(s.site.Contacts) {
		return ErrIndexOutOfRange
	}

	s.site.Contacts = append(s.site.Contacts[:index], s.site.Contacts[index+1:]...)

	return nil
}

func (s *AdminSession) AddSection(sec models.Section) {
	s.site.Sections = append(s.site.Sections, sec)
}

// SetSectionStatus меняет статус раздела на месте; устаревший флаг
// visible при этом сбрасывается, чтобы явный статус не конкурировал с ним
func (s *AdminSession) SetSectionStatus(index int, status models.SectionStatus) error {
	if index < 0 || index >= len(s.site.Sections) {
		return ErrIndexOutOfRange
	}

	s.site.Sections[index].Status = status
	s.site.Sections[index].Visible = nil

	return nil
}

func (s *AdminSession) RemoveSection(index int) error {
	if index < 0 || index >= len(s.site.Sections) {
		return ErrIndexOutOfRange
	}

	s.site.Sections = append(s.site.Sections[:index], s.site.Sections[index+1:]...)

	return nil
}

// SaveAll сериализует весь черновик: один вызов на галереи, один на
// конфигурацию сайта. Вызовы независимы и не транзакционны друг
// относительно друга — сбой одного не откатывает другой.
// Без токена сохранение молча прекращается до каких-либо сетевых вызовов.
func (s *AdminSession) SaveAll(ctx context.Context, token string) error {
	const op = "admin_service.SaveAll"

	log := s.log.With(slog.String("op", op))

	if token == "" {
		log.Warn("save abandoned: operator supplied no token")
		return ErrSaveAbandoned
	}

	var errs []error

	if err := s.content.SaveGalleries(ctx, token, s.galleries); err != nil {
		errs = append(errs, err)
	}
	if err := s.content.SaveSiteConfig(ctx, token, s.site); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		log.Error("save-all finished with failures", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("draft saved")

	return nil
}
